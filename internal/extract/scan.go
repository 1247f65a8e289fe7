package extract

import (
	"sort"

	"github.com/dimsheet/dimsheet/internal/dimension"
	"github.com/dimsheet/dimsheet/internal/pdf"
)

// ScanPages walks extracted page lines and collects every balloon callout,
// sorted by balloon number. Ties keep scan order.
func ScanPages(pages []pdf.PageLines, defaultTolerance string) []dimension.Dimension {
	var dims []dimension.Dimension

	for _, page := range pages {
		for _, line := range page.Lines {
			balloon, text, ok := dimension.MatchBalloon(line)
			if !ok {
				continue
			}

			dim := dimension.Parse(text, defaultTolerance)
			dim.Balloon = balloon
			dim.Page = page.Page
			dims = append(dims, dim)
		}
	}

	sort.SliceStable(dims, func(i, j int) bool {
		return dims[i].Balloon < dims[j].Balloon
	})

	return dims
}

// UntypedFilter is the types selector for dimensions carrying no type
// marker, since an empty string cannot travel through a comma-separated
// query value.
const UntypedFilter = "-"

// Filter returns the dimensions matching the selected parameters and types.
// An empty selector means no filtering on that axis; the types selector
// accepts UntypedFilter for dimensions without a type marker.
func Filter(dims []dimension.Dimension, parameters, types []string) []dimension.Dimension {
	if len(parameters) == 0 && len(types) == 0 {
		return dims
	}

	paramSet := toSet(parameters)
	typeSet := toSet(types)
	if typeSet[UntypedFilter] {
		delete(typeSet, UntypedFilter)
		typeSet[""] = true
	}

	filtered := make([]dimension.Dimension, 0, len(dims))
	for _, dim := range dims {
		if len(paramSet) > 0 && !paramSet[dim.Parameter] {
			continue
		}
		if len(typeSet) > 0 && !typeSet[dim.Type] {
			continue
		}
		filtered = append(filtered, dim)
	}

	return filtered
}

// buildSummary aggregates dimensions for the metrics panel and the Summary
// sheet. Parameter counts are ordered by count descending, name ascending
// on ties.
func buildSummary(dims []dimension.Dimension) Summary {
	summary := Summary{Total: len(dims)}

	paramCounts := map[string]int{}
	pages := map[int]bool{}

	for _, dim := range dims {
		paramCounts[dim.Parameter]++
		if dim.Type == dimension.TypeCritical {
			summary.CriticalCount++
		}
		if dim.Page > 0 {
			pages[dim.Page] = true
		}
	}

	summary.UniqueParameters = len(paramCounts)
	summary.PagesWithCallouts = len(pages)

	for parameter, count := range paramCounts {
		summary.ParameterCounts = append(summary.ParameterCounts, ParameterCount{
			Parameter: parameter,
			Count:     count,
		})
	}
	sort.Slice(summary.ParameterCounts, func(i, j int) bool {
		if summary.ParameterCounts[i].Count != summary.ParameterCounts[j].Count {
			return summary.ParameterCounts[i].Count > summary.ParameterCounts[j].Count
		}
		return summary.ParameterCounts[i].Parameter < summary.ParameterCounts[j].Parameter
	})

	return summary
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}
