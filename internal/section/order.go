package section

import "sort"

// Sort orders list in place by Order, then CreatedAt, then ID.  Equal
// orders never collapse; creation time breaks the tie.
func Sort(list []Section) {
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

func less(a, b Section) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// DisplayOrder returns a sorted copy with headers first and footers last.
// The input slice is left untouched.
func DisplayOrder(list []Section) []Section {
	var head, body, foot []Section
	for _, s := range list {
		switch ZoneOf(s.Type) {
		case ZoneHeader:
			head = append(head, s)
		case ZoneFooter:
			foot = append(foot, s)
		default:
			body = append(body, s)
		}
	}
	Sort(head)
	Sort(body)
	Sort(foot)

	out := make([]Section, 0, len(list))
	out = append(out, head...)
	out = append(out, body...)
	return append(out, foot...)
}

// Renumber assigns Order = index for every entry, following the slice
// order.  Used after an explicit reorder.
func Renumber(list []Section) {
	for i := range list {
		list[i].Order = float64(i)
	}
}

// NextOrder returns max(Order)+1 across list, or 0 when list is empty.
func NextOrder(list []Section) float64 {
	if len(list) == 0 {
		return 0
	}
	max := list[0].Order
	for _, s := range list[1:] {
		if s.Order > max {
			max = s.Order
		}
	}
	return max + 1
}

// Index returns the position of the section with id, or -1.
func Index(list []Section, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
