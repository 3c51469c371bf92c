package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/core/keyway"
)

// specFlags are the flags that describe the key being decoded
type specFlags struct {
	keyway string
	series string
	spaces int
	depths string
	macs   int
	lishi  string
}

func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keyway, "keyway", "k", "", "Keyway name; fills the rest of the spec from the keyway table")
	cmd.Flags().StringVar(&f.series, "series", "", "Code series, e.g. 0001-6000")
	cmd.Flags().IntVarP(&f.spaces, "spaces", "s", 0, "Number of cut positions")
	cmd.Flags().StringVarP(&f.depths, "depths", "d", "", "Deepest cut (4) or list of depths (1,2,3,4,5)")
	cmd.Flags().IntVarP(&f.macs, "macs", "m", 0, "Maximum adjacent cut specification")
	cmd.Flags().StringVar(&f.lishi, "lishi", "", "Lishi pick/decoder for the keyway")
}

// changed reports whether any spec flag was given
func (f *specFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"keyway", "series", "spaces", "depths", "macs", "lishi"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resolve builds the spec: explicit flags first, then the keyway's preset,
// then base, then the configured defaults
func (f *specFlags) resolve(cmd *cobra.Command, e *env, base keyway.Spec) (keyway.Spec, error) {
	var spec keyway.Spec
	spec.Keyway = strings.TrimSpace(f.keyway)
	spec.CodeSeries = f.series
	spec.Lishi = f.lishi

	if cmd.Flags().Changed("spaces") {
		if f.spaces < 1 || f.spaces > keyway.MaxSpaces {
			return keyway.Spec{}, fmt.Errorf("--spaces must be between 1 and %d, got %d", keyway.MaxSpaces, f.spaces)
		}
		spec.Spaces = f.spaces
	}
	if cmd.Flags().Changed("depths") {
		depths := keyway.ParseDepths(f.depths)
		if deepest := depths.MaxDepth(); deepest > 9 {
			return keyway.Spec{}, fmt.Errorf("--depths must resolve to a depth between 1 and 9, got %d", deepest)
		}
		spec.Depths = depths
	}
	if cmd.Flags().Changed("macs") {
		if f.macs < 0 {
			return keyway.Spec{}, fmt.Errorf("--macs must not be negative, got %d", f.macs)
		}
		macs := f.macs
		spec.MACS = &macs
	}

	if spec.Keyway != "" {
		rule, err := e.table.Resolve(spec.Keyway)
		if err != nil {
			e.warn("%v; using the default spec", err)
		} else {
			spec.Keyway = rule.Name
			if rule.Spec != nil {
				spec = spec.Merge(*rule.Spec)
			}
		}
	}

	return spec.Merge(base).Merge(e.cfg.Defaults).Normalize(), nil
}
