// internal/common/camunda/camundatest/jobclient.go
package camundatest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// JobClient records the commands a handler sends instead of talking to a broker.
type JobClient struct {
	gateway *gateway
}

func NewJobClient() *JobClient {
	return &JobClient{gateway: &gateway{}}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gateway, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gateway, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gateway, noRetry)
}

// FailCompletes makes the next n complete commands return err.
func (c *JobClient) FailCompletes(n int, err error) {
	c.gateway.mu.Lock()
	defer c.gateway.mu.Unlock()
	c.gateway.completeFailures = n
	c.gateway.completeErr = err
}

// CompleteAttempts counts complete commands received, including failed ones.
func (c *JobClient) CompleteAttempts() int {
	c.gateway.mu.Lock()
	defer c.gateway.mu.Unlock()
	return c.gateway.completeAttempts
}

// Completed returns the variables of every completed job, decoded.
func (c *JobClient) Completed() []map[string]interface{} {
	c.gateway.mu.Lock()
	defer c.gateway.mu.Unlock()

	out := make([]map[string]interface{}, 0, len(c.gateway.completed))
	for _, req := range c.gateway.completed {
		vars := map[string]interface{}{}
		_ = json.Unmarshal([]byte(req.Variables), &vars)
		out = append(out, vars)
	}
	return out
}

// Failed returns the fail requests sent so far.
func (c *JobClient) Failed() []*pb.FailJobRequest {
	c.gateway.mu.Lock()
	defer c.gateway.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), c.gateway.failed...)
}

// Thrown returns the BPMN errors thrown so far.
func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	c.gateway.mu.Lock()
	defer c.gateway.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), c.gateway.thrown...)
}

// Job builds an activated job carrying variables encoded as JSON.
func Job(key int64, jobType string, retries int32, variables interface{}) entities.Job {
	data, _ := json.Marshal(variables)
	return RawJob(key, jobType, retries, string(data))
}

// RawJob builds an activated job with a literal variables document.
func RawJob(key int64, jobType string, retries int32, variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               jobType,
		Retries:            retries,
		ProcessInstanceKey: key * 10,
		Variables:          variables,
	}}
}

// gateway implements the three job RPCs. Any other call panics through the
// nil embedded interface.
type gateway struct {
	pb.GatewayClient

	mu        sync.Mutex
	completed []*pb.CompleteJobRequest
	failed    []*pb.FailJobRequest
	thrown    []*pb.ThrowErrorRequest

	completeAttempts int
	completeFailures int
	completeErr      error
}

func (g *gateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, opts ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completeAttempts++
	if g.completeFailures > 0 {
		g.completeFailures--
		return nil, g.completeErr
	}
	g.completed = append(g.completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (g *gateway) FailJob(ctx context.Context, in *pb.FailJobRequest, opts ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failed = append(g.failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g *gateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, opts ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.thrown = append(g.thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}
