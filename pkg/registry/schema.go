// pkg/registry/schema.go
package registry

// ActivityRegistry lists the service tasks a BPMN model may reference.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"displayName"`
	Description string            `json:"description"`
	TaskType    string            `json:"taskType"`
	Inputs      map[string]string `json:"inputs"`
	Outputs     map[string]string `json:"outputs"`
	ErrorCodes  []string          `json:"errorCodes"`
	Timeout     string            `json:"timeout"`
	Retries     int               `json:"retries"`
	Tags        []string          `json:"tags,omitempty"`
}
