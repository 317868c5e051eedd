// Package cache guarda localmente o último conjunto de dados de vendas do questctl
package cache

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// Key identifica a única entrada de cache, sobrescrita a cada carga ou upload
const Key = "sales_quest_data"

var (
	ErrCorrupted = errors.New("cache corrompido")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)
