package admin

import (
	"fmt"
	"sort"

	"github.com/mrlokans/storefront/internal/entities"
)

// FeaturedOrderProblems describes every way the featured rows deviate from a
// dense, zero-based display order over distinct books. Rows are expected in
// list order (ascending display order). An empty result means consistent.
func FeaturedOrderProblems(rows []entities.FeaturedBook) []string {
	var problems []string

	seenBooks := make(map[string]string, len(rows))
	orders := make([]int, 0, len(rows))
	for _, row := range rows {
		if other, dup := seenBooks[row.BookID]; dup {
			problems = append(problems, fmt.Sprintf("book %s is featured twice (rows %s and %s)", row.BookID, other, row.ID))
		} else {
			seenBooks[row.BookID] = row.ID
		}
		orders = append(orders, row.DisplayOrder)
	}

	sort.Ints(orders)
	for i, order := range orders {
		if order != i {
			problems = append(problems, fmt.Sprintf("display orders %v are not the sequence 0..%d", orders, len(orders)-1))
			break
		}
	}

	return problems
}
