//go:build ignore

// generate_hash.go — генерирует Argon2id-хеш пароля администратора.
// Запуск: go run scripts/generate_hash.go <пароль>
//
// Результат положите в .env как есть. Значение в одинарных кавычках:
// иначе godotenv раскроет $argon2id как переменную.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id
const (
	memory      uint32 = 64 * 1024 // 64 MB
	iterations  uint32 = 3
	parallelism uint8  = 2
	keyLength   uint32 = 32
	saltLength         = 16
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "Использование: go run scripts/generate_hash.go <пароль>")
		os.Exit(1)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка генерации соли: %v\n", err)
		os.Exit(1)
	}

	hash := argon2.IDKey([]byte(os.Args[1]), salt, iterations, memory, parallelism, keyLength)

	fmt.Printf("ADMIN_PASSWORD_HASH='$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s'\n",
		argon2.Version, memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}
