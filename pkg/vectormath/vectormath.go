// Package vectormath — чистая векторная математика для семантического матчинга.
package vectormath

import (
	"math"

	"github.com/synapse-net/go-backend/pkg/e"
)

// CosineSimilarity вычисляет косинусную близость двух векторов в диапазоне [-1,1].
// Векторы с нулевой нормой дают 0 (деления на ноль не происходит).
// Разная размерность — нарушение контракта вызывающей стороны, возвращается e.ErrDimensionMismatch.
func CosineSimilarity(u, v []float32) (float64, error) {
	if len(u) != len(v) {
		return 0, e.ErrDimensionMismatch
	}

	var dot, normU, normV float64
	for i := range u {
		a := float64(u[i])
		b := float64(v[i])
		dot += a * b
		normU += a * a
		normV += b * b
	}

	if normU == 0 || normV == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normU) * math.Sqrt(normV)), nil
}

// ToPercentage переводит косинусную близость [-1,1] в проценты [0,100]
// с округлением до двух знаков. Значения за пределами [-1,1] из-за
// погрешности float-арифметики обрезаются до границ диапазона.
func ToPercentage(score float64) float64 {
	pct := math.Round((score+1)*50*100) / 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
