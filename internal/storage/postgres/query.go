package postgres

import (
	"strconv"
	"strings"
)

// args accumulates positional parameters while a statement is assembled.
type args []interface{}

// add appends v and returns its placeholder.
func (a *args) add(v interface{}) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

func or(preds []string) string {
	if len(preds) == 0 {
		return ""
	}
	return "(" + strings.Join(preds, " OR ") + ")"
}

func and(preds []string) string {
	var nonEmpty []string
	for _, p := range preds {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(nonEmpty, " AND ")
}
