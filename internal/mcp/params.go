package mcp

import (
	"fmt"
	"math"
	"strings"

	"github.com/aki/keybit/internal/core/keyway"
)

// stringArg returns a string argument, or "" when absent
func stringArg(args map[string]interface{}, name string) (string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", nil
	}
	str, ok := raw.(string)
	if !ok {
		return "", InvalidParameterError(name, "a string")
	}
	return str, nil
}

// intArg returns an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, name string) (int, bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false, InvalidParameterError(name, "a whole number")
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false, InvalidParameterError(name, "a number in range")
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	default:
		return 0, false, InvalidParameterError(name, "a number")
	}
}

// boolArg returns a pointer to a boolean argument, nil when absent
func boolArg(args map[string]interface{}, name string) (*bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return nil, InvalidParameterError(name, "true or false")
	}
	return &v, nil
}

// specFromArgs builds a spec from the call arguments: explicit values first,
// then the keyway's preset, then base
func (s *Server) specFromArgs(args map[string]interface{}, base keyway.Spec) (keyway.Spec, error) {
	var spec keyway.Spec

	name, err := stringArg(args, "keyway")
	if err != nil {
		return keyway.Spec{}, err
	}
	spec.Keyway = strings.TrimSpace(name)

	spaces, ok, err := intArg(args, "spaces")
	if err != nil {
		return keyway.Spec{}, err
	}
	if ok {
		if spaces < 1 || spaces > keyway.MaxSpaces {
			return keyway.Spec{}, InvalidParameterError("spaces", fmt.Sprintf("a number between 1 and %d", keyway.MaxSpaces))
		}
		spec.Spaces = spaces
	}

	depths, err := stringArg(args, "depths")
	if err != nil {
		return keyway.Spec{}, err
	}
	if depths != "" {
		d := keyway.ParseDepths(depths)
		if deepest := d.MaxDepth(); deepest > 9 {
			return keyway.Spec{}, InvalidParameterError("depths", fmt.Sprintf("a depth between 1 and 9, got %d", deepest))
		}
		spec.Depths = d
	}

	macs, ok, err := intArg(args, "macs")
	if err != nil {
		return keyway.Spec{}, err
	}
	if ok {
		if macs < 0 {
			return keyway.Spec{}, InvalidParameterError("macs", "zero or more")
		}
		spec.MACS = &macs
	}

	if spec.Keyway != "" {
		rule, err := s.table.Resolve(spec.Keyway)
		if err != nil {
			return keyway.Spec{}, KeywayNotFoundError(err)
		}
		spec.Keyway = rule.Name
		if rule.Spec != nil {
			spec = spec.Merge(*rule.Spec)
		}
	}

	return spec.Merge(base).Merge(s.defaults).Normalize(), nil
}
