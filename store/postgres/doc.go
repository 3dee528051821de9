// Package postgres implements the catalog and statistics ports on PostgreSQL.
//
// Queries are built with squirrel using $n placeholders and run through a
// Querier, which *pgxpool.Pool satisfies. Tables:
//
//	tools(id, name, description, category, icon, input_type, output_type, kind, popular, enabled)
//	tool_stats(tool_id, view_count, average_rating, total_ratings)
package postgres
