// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fair

import (
	"math/big"
	"regexp"

	"github.com/pdiddy/schedsheet/pkg/types"
)

// TotalName is the name of the synthetic row appended by Totals.
const TotalName = "Total"

var (
	memoryPattern = regexp.MustCompile(`(\d+) mb`)
	vcoresPattern = regexp.MustCompile(`(\d+) vcores`)
)

// Totals sums the maximum memory and vcores declared across resources. Values
// that do not contain "<digits> mb" or "<digits> vcores" contribute nothing.
// Sums are exact for quantities of any length.
func Totals(resources []types.QueueResource) types.QueueResource {
	memory, vcores := new(big.Int), new(big.Int)
	for _, r := range resources {
		addQuantity(memory, memoryPattern, r.MaxMemory)
		addQuantity(vcores, vcoresPattern, r.MaxVcores)
	}
	return types.QueueResource{
		Name:      TotalName,
		MaxMemory: types.Ptr(memory.String() + " mb"),
		MaxVcores: types.Ptr(vcores.String() + " vcores"),
		Weight:    types.Ptr(""),
	}
}

func addQuantity(sum *big.Int, re *regexp.Regexp, s *string) {
	if s == nil || *s == "" {
		return
	}
	m := re.FindStringSubmatch(*s)
	if m == nil {
		return
	}
	if n, ok := new(big.Int).SetString(m[1], 10); ok {
		sum.Add(sum, n)
	}
}
