package discovery

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// requestPath reads the "path" field, either "camping/tents" or
// ["camping", "tents"]. Empty segments are dropped.
func requestPath(req *structpb.Struct) ([]string, error) {
	value, ok := req.GetFields()["path"]
	if !ok {
		return []string{}, nil
	}

	var raw []string
	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		raw = strings.Split(kind.StringValue, "/")
	case *structpb.Value_ListValue:
		for _, item := range kind.ListValue.GetValues() {
			s, ok := item.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, status.Error(codes.InvalidArgument, "path segments must be strings")
			}
			raw = append(raw, s.StringValue)
		}
	case *structpb.Value_NullValue:
	default:
		return nil, status.Error(codes.InvalidArgument, "path must be a string or a list of strings")
	}

	segments := []string{}
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments, nil
}

// requestParams reads the "params" object into the flat parameter map.
// List values are joined with commas, numbers and booleans are formatted.
func requestParams(req *structpb.Struct) (map[string]string, error) {
	params := map[string]string{}
	value, ok := req.GetFields()["params"]
	if !ok {
		return params, nil
	}
	obj := value.GetStructValue()
	if obj == nil {
		return nil, status.Error(codes.InvalidArgument, "params must be an object")
	}

	for key, v := range obj.GetFields() {
		s, err := scalarString(v)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "param %q: %v", key, err)
		}
		params[key] = s
	}
	return params, nil
}

func scalarString(v *structpb.Value) (string, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NumberValue:
		return fmt.Sprint(kind.NumberValue), nil
	case *structpb.Value_BoolValue:
		return fmt.Sprint(kind.BoolValue), nil
	case *structpb.Value_NullValue:
		return "", nil
	case *structpb.Value_ListValue:
		parts := make([]string, 0, len(kind.ListValue.GetValues()))
		for _, item := range kind.ListValue.GetValues() {
			if _, nested := item.GetKind().(*structpb.Value_ListValue); nested {
				return "", fmt.Errorf("nested lists are not supported")
			}
			s, err := scalarString(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unsupported value type")
	}
}

// toStruct converts a JSON-serialisable reply into a structpb.Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	return structpb.NewStruct(fields)
}
