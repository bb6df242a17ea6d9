package psqlbuilder

import (
	sq "github.com/Masterminds/squirrel"
)

// builder squirrel с нумерованными placeholders ($1, $2, ...) для Postgres
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Select начинает SELECT запрос
func Select(columns ...string) sq.SelectBuilder {
	return builder.Select(columns...)
}

// Insert начинает INSERT запрос
func Insert(into string) sq.InsertBuilder {
	return builder.Insert(into)
}

// Update начинает UPDATE запрос
func Update(table string) sq.UpdateBuilder {
	return builder.Update(table)
}

// Delete начинает DELETE запрос
func Delete(from string) sq.DeleteBuilder {
	return builder.Delete(from)
}
