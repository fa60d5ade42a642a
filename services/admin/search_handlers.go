package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pavitra93/go-hr-admin-panel/shared/listing"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
)

const (
	searchLimit      = 50
	searchCandidates = 200
)

// SearchResult is one global search hit
type SearchResult struct {
	Title   string            `json:"title"`
	Details map[string]string `json:"details"`
	URL     string            `json:"url"`
}

// rankEmployees orders employees by how closely their names match q
func rankEmployees(q string, employees []models.Employee) []models.Employee {
	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = strings.Join(strings.Fields(e.FirstName+" "+e.MiddleName+" "+e.LastName), " ")
	}

	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Stable(ranks)

	ranked := make([]models.Employee, 0, len(employees))
	seen := make(map[int]bool, len(ranks))
	for _, rank := range ranks {
		ranked = append(ranked, employees[rank.OriginalIndex])
		seen[rank.OriginalIndex] = true
	}
	// substring hits on a single name can fail the fuzzy match when q has spaces
	for i, e := range employees {
		if !seen[i] {
			ranked = append(ranked, e)
		}
	}
	return ranked
}

func toSearchResult(e models.Employee) SearchResult {
	country := ""
	if e.Country != nil {
		country = e.Country.Name
	}
	return SearchResult{
		Title:   e.FullName(),
		Details: map[string]string{"Country": country},
		URL:     fmt.Sprintf("/api/employees/%d", e.ID),
	}
}

// handleGlobalSearch finds employees by first, last or middle name
func handleGlobalSearch(lister *listing.Lister) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			utils.OKResponse(c, "Search results", []SearchResult{})
			return
		}

		employees, err := lister.MatchNames(c.Request.Context(), tenantScope(info), q, searchCandidates)
		if err != nil {
			respondError(c, err, "Failed to search")
			return
		}

		ranked := rankEmployees(q, employees)
		if len(ranked) > searchLimit {
			ranked = ranked[:searchLimit]
		}

		results := make([]SearchResult, 0, len(ranked))
		for _, e := range ranked {
			results = append(results, toSearchResult(e))
		}
		utils.OKResponse(c, "Search results", results)
	}
}
