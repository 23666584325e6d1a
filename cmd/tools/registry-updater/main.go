// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"trip-ranker/pkg/registry"
)

const defaultPath = "configs/activity-registry.json"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportPath := exportCmd.String("path", defaultPath, "Where to write the registry")

	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", defaultPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := registry.Trip().Save(*exportPath, time.Now()); err != nil {
			fmt.Printf("Error writing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d activities to %s\n", len(registry.Trip().Activities), *exportPath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validate(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "list":
		for _, a := range registry.Trip().Activities {
			fmt.Printf("%-24s timeout=%-4s retries=%d errors=%s\n",
				a.TaskType, a.Timeout, a.Retries, strings.Join(a.ErrorCodes, ","))
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

// validate checks the file on its own and against the task types the
// worker manager registers.
func validate(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	if missing := reg.Missing(registry.Trip()); len(missing) > 0 {
		return fmt.Errorf("registry is missing task types: %s", strings.Join(missing, ", "))
	}
	return nil
}

func help() {
	fmt.Println("Usage: registry-updater <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  export    Write the trip-search activities to -path")
	fmt.Println("  validate  Check -path against the registered task types")
	fmt.Println("  list      Print the registered activities")
}
