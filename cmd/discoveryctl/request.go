package main

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// buildRequest turns "key=value" arguments into a request document.
// Repeated keys are sent as a list.
func buildRequest(path string, args []string) (*structpb.Struct, error) {
	params := map[string]interface{}{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", arg)
		}
		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []interface{}{existing, value}
		case []interface{}:
			params[key] = append(existing, value)
		}
	}

	fields := map[string]interface{}{"params": params}
	if path != "" {
		fields["path"] = path
	}
	return structpb.NewStruct(fields)
}
