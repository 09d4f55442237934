package label

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Provider names accepted by [ByName].
const (
	NamePercent     = "percent"
	NameNamePercent = "name-percent"
	NameName        = "name"
	NameNone        = "none"
)

// Names lists the built-in providers.
var Names = []string{NamePercent, NameNamePercent, NameName, NameNone}

// ByName returns a built-in provider using the given threshold.
func ByName(name string, threshold float64) (Provider, error) {
	switch strings.ToLower(name) {
	case NamePercent, "":
		return Percent{Threshold: threshold}, nil
	case NameNamePercent:
		return Named{Threshold: threshold}, nil
	case NameName:
		return NameOnly{Threshold: threshold}, nil
	case NameNone:
		return None, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"invalid label provider: %q (must be one of: %s)", name, strings.Join(Names, ", "))
	}
}

// Describe returns a short human readable description of a provider.
func Describe(p Provider) string {
	switch v := p.(type) {
	case Percent:
		return fmt.Sprintf("percent (> %s)", FormatPercent(v.Threshold))
	case Named:
		return fmt.Sprintf("name + percent (> %s)", FormatPercent(v.Threshold))
	case NameOnly:
		return fmt.Sprintf("name (> %s)", FormatPercent(v.Threshold))
	case *Holder:
		return Describe(v.Provider())
	default:
		return "custom"
	}
}
