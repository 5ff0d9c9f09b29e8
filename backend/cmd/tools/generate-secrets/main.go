package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
)

// 256 bits each
const secretSize = 32

func generate() (string, error) {
	b := make([]byte, secretSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func main() {
	jwtKey, err := generate()
	if err != nil {
		log.Fatalf("Failed to generate jwt key: %v", err)
	}
	confirmationSecret, err := generate()
	if err != nil {
		log.Fatalf("Failed to generate confirmation secret: %v", err)
	}

	fmt.Println("=================================================")
	fmt.Println("  YaMDb signing secrets")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("Add these to your config/private.yaml:")
	fmt.Printf("jwt_key: \"%s\"\n", jwtKey)
	fmt.Printf("confirmation_secret: \"%s\"\n", confirmationSecret)
	fmt.Println()
	fmt.Println("or export YAMDB_JWT_KEY / YAMDB_CONFIRMATION_SECRET.")
	fmt.Println()
	fmt.Println("IMPORTANT:")
	fmt.Println("- Rotating jwt_key logs everyone out")
	fmt.Println("- Rotating confirmation_secret voids pending confirmation codes")
	fmt.Println("- Never commit these to version control!")
	fmt.Println("=================================================")
}
