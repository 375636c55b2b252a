package main

import (
	"os"

	"recipebook/config"
	"recipebook/routes"
	"recipebook/utils"
)

func main() {
	config.InitLogger()
	config.InitDB()
	if os.Getenv("S3_BUCKET") != "" {
		utils.InitS3()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatalf("server exited: %v", err)
	}
}
