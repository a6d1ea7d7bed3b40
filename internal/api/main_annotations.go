// @title           curio API
// @version         1.0
// @description     Encrypted asset store and ordered catalog for a personal site. Mutations require an admin session or a PIN.
// @BasePath        /
// @securityDefinitions.apikey AdminPIN
// @in              header
// @name            X-Admin-Pin
package api
