package main

import (
	"os"

	"github.com/joho/godotenv"

	"gamestore/internal/mockapi"
)

func main() {
	//.envがあれば読む（無くても動く）
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret_change_me"
	}

	srv := mockapi.New(secret)
	srv.Seed()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		if v[0] != ':' {
			addr = ":" + v
		} else {
			addr = v
		}
	}

	if err := srv.Start(addr); err != nil {
		panic(err)
	}
}
