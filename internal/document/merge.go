package document

import (
	"slices"
	"strings"

	"github.com/project-labs/project/internal/errdefs"
)

// Strategy names a merge policy for a template document (src) landing on an
// existing destination document (dst).
type Strategy string

const (
	// StrategyPreserveExcluded starts from dst and lets every src key
	// overwrite, except keys that dst already has and that either side lists
	// under ExcludeKey.
	StrategyPreserveExcluded Strategy = "preserve-excluded"

	// StrategySourceWins drops the keys src lists under ExcludeKey from src,
	// then takes a shallow union in which src wins and dst is the fallback.
	StrategySourceWins Strategy = "source-wins"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyPreserveExcluded

// Strategies returns every known strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyPreserveExcluded, StrategySourceWins}
}

// ParseStrategy validates a strategy name. An empty name yields DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return DefaultStrategy, nil
	}
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Strategies(), s) {
		return "", errdefs.InvalidInput("unknown merge strategy %q (want one of %s)", name, strategyList())
	}
	return s, nil
}

func strategyList() string {
	names := make([]string, 0, len(Strategies()))
	for _, s := range Strategies() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Merge combines src into dst under the given strategy and returns a new
// document; neither input is modified. The result never contains ExcludeKey.
func Merge(strategy Strategy, src, dst *Document) (*Document, error) {
	switch strategy {
	case StrategyPreserveExcluded:
		return mergePreserveExcluded(src, dst), nil
	case StrategySourceWins:
		return mergeSourceWins(src, dst), nil
	default:
		return nil, errdefs.InvalidInput("unknown merge strategy %q", strategy)
	}
}

func mergePreserveExcluded(src, dst *Document) *Document {
	exclude := keySet(src.ExcludeKeys(), dst.ExcludeKeys())

	out := dst.Clone()
	out.Delete(ExcludeKey)
	for _, k := range src.keys {
		if k == ExcludeKey {
			continue
		}
		if exclude[k] && out.Has(k) {
			continue
		}
		out.Set(k, src.values[k])
	}
	return out
}

func mergeSourceWins(src, dst *Document) *Document {
	exclude := keySet(src.ExcludeKeys())

	out := dst.Clone()
	out.Delete(ExcludeKey)
	for _, k := range src.keys {
		if k == ExcludeKey || exclude[k] {
			continue
		}
		out.Set(k, src.values[k])
	}
	return out
}

func keySet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range lists {
		for _, k := range list {
			set[k] = true
		}
	}
	return set
}
