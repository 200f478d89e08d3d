package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

// outputJSON pretty-prints v to stdout.
func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) outputErrorJSON(errType, message, requestID string) {
	output := map[string]any{
		"error": map[string]any{
			"type":    errType,
			"message": message,
		},
	}
	if requestID != "" {
		output["error"].(map[string]any)["request_id"] = requestID
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// handleAPIError prints err and maps it to an exit code.
func (a *App) handleAPIError(err error) error {
	var apiErr *cloudglue.Error
	if errors.As(err, &apiErr) {
		errType := "api_error"
		code := ExitAPI
		switch {
		case errors.Is(err, cloudglue.ErrInvalidRequest):
			errType = "validation_error"
			code = ExitValidation
		case errors.Is(err, cloudglue.ErrTimeout):
			errType = "timeout"
		case errors.Is(err, cloudglue.ErrNetwork):
			errType = "network_error"
			code = ExitNetwork
		}

		if a.jsonOutput {
			a.outputErrorJSON(errType, apiErr.Message, apiErr.RequestID)
		} else {
			fmt.Fprintf(a.stderr, "Error: %s\n", apiErr.Message)
			if apiErr.RequestID != "" {
				fmt.Fprintf(a.stderr, "  Request ID: %s\n", apiErr.RequestID)
			}
		}
		return exitWithCode(code, err)
	}

	if a.jsonOutput {
		a.outputErrorJSON("error", err.Error(), "")
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitAPI, err)
}
