// Package secret resolves credentials referenced from configuration.
//
// Configuration values go through strict environment expansion first
// (${VAR} must be set, $$ is a literal dollar). A value of the form
// secretref:<provider>:<ref>, whole or inline, is then looked up through the
// named Provider. Two providers are built in: "env" reads an environment
// variable and "file" reads a mounted secret file.
//
//	dsn:     ${TOOLCATALOG_DSN}
//	api_key: secretref:file:anon_key
//	jwt_secret: secretref:env:SUPABASE_JWT_SECRET
package secret
