package query

import (
	sq "github.com/Masterminds/squirrel"
)

// Builder returns a statement builder with Postgres placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
