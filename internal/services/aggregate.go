package services

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/afetlink/afetlink-backend/internal/models"
)

// Every aggregation is a full-table decrypt scan: addresses are stored as
// opaque non-deterministic ciphertext, so no index over il/ilce can exist.

type CityCount struct {
	Il    string `json:"il"`
	Count int    `json:"count"`
}

type DistrictCount struct {
	Ilce  string `json:"ilce"`
	Count int    `json:"count"`
}

// DecryptCaseAddresses opens the address blob of every case concurrently.
// All-or-nothing: one bad envelope fails the whole scan.
func DecryptCaseAddresses(ctx context.Context, cases []models.Case, key []byte) ([]models.Address, error) {
	addrs := make([]models.Address, len(cases))
	g, _ := errgroup.WithContext(ctx)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			addr, err := DecryptCaseAddress(c, key)
			if err != nil {
				return err
			}
			addrs[i] = addr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return addrs, nil
}

// CountCasesByCity groups addresses by il and returns counts sorted
// lexicographically ascending by city name.
func CountCasesByCity(addrs []models.Address) []CityCount {
	byCity := make(map[string]int)
	for _, a := range addrs {
		byCity[a.Il]++
	}

	result := make([]CityCount, 0, len(byCity))
	for il, count := range byCity {
		result = append(result, CityCount{Il: il, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Il < result[j].Il })
	return result
}

// CountCasesByDistrict filters addresses to the given il and groups by ilce,
// sorted lexicographically ascending by district name.
func CountCasesByDistrict(addrs []models.Address, il string) []DistrictCount {
	byDistrict := make(map[string]int)
	for _, a := range addrs {
		if a.Il == il {
			byDistrict[a.Ilce]++
		}
	}

	result := make([]DistrictCount, 0, len(byDistrict))
	for ilce, count := range byDistrict {
		result = append(result, DistrictCount{Ilce: ilce, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Ilce < result[j].Ilce })
	return result
}

// MatchesDistrict reports whether an address matches il and ilce,
// case-insensitively.
func MatchesDistrict(addr models.Address, il, ilce string) bool {
	return strings.EqualFold(addr.Il, il) && strings.EqualFold(addr.Ilce, ilce)
}
