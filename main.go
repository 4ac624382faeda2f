package main

import "linkadmin/internal/app"

// @title           Link Admin API
// @version         1.0
// @description     Account, auth and short-link administration service.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.Run()
}
