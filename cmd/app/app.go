package main

import "github.com/synapse-net/go-backend/internal/app"

//	@title			Synapse Matching API
//	@version		1.0
//	@description	Матчинг по целям, персональная лента и система импакта.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	app.Run()
}
