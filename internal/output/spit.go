// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"gopkg.in/yaml.v2"
)

// Spit writes result to w in the requested format. "json" and "yaml"
// marshal the value; anything else prints it the way fmt would. Nil results
// print as an empty line so scripts always get one line per call.
func Spit(result any, format string, w io.Writer) {
	switch format {
	case "json":
		jsonOutput, err := json.Marshal(result)
		if err != nil {
			log.WithError(err).Error("failed to marshal output")
			return
		}
		fmt.Fprintln(w, string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(result)
		if err != nil {
			log.WithError(err).Error("failed to marshal output")
			return
		}
		_, _ = w.Write(yamlOutput)
	default:
		if result == nil {
			fmt.Fprintln(w)
			return
		}
		fmt.Fprintln(w, InterfaceToString(result, ""))
	}
}

// InterfaceToString renders v for display, substituting missing for nil.
func InterfaceToString(v any, missing string) string {
	if v == nil {
		return missing
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// Trim the ".000000" that %v would keep for whole numbers.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
