// Package rest implements the catalog and statistics ports over a
// PostgREST-style HTTP API.
//
// Requests look like:
//
//	GET {base}/rest/v1/tools?select=*&enabled=eq.true&order=category.asc,name.asc&offset=0&limit=1000
//	GET {base}/rest/v1/tools?select=*&id=eq.<id>&limit=1
//	GET {base}/rest/v1/tool_stats?select=tool_id,view_count,average_rating,total_ratings
//
// Credentials are added by the client's transport, normally an
// auth.Transport.
package rest
