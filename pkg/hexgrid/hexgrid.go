// Package hexgrid — пространственная индексация поверх H3 (шестиугольная
// иерархическая сетка). Ячейки представлены строковыми индексами, как они
// хранятся в БД.
package hexgrid

import (
	h3 "github.com/uber/h3-go/v4"

	"github.com/synapse-net/go-backend/pkg/e"
)

// Index — пространственный индекс с фиксированным разрешением.
// Разрешение задаётся один раз конфигурацией на весь деплой.
type Index struct {
	resolution int
}

func NewIndex(resolution int) *Index {
	return &Index{resolution: resolution}
}

// ToCell переводит координаты в строковый H3-индекс ячейки.
// Некорректные координаты отклоняются до обращения к H3.
func (i *Index) ToCell(latitude, longitude float64) (string, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return "", e.ErrInvalidCoordinates
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(latitude, longitude), i.resolution)
	if err != nil {
		return "", e.Wrap("h3.LatLngToCell", err)
	}

	return cell.String(), nil
}

// Ring возвращает все ячейки в пределах k шагов от центра, включая сам центр.
// k=0 возвращает только центральную ячейку.
func (i *Index) Ring(cell string, k int) ([]string, error) {
	center, err := cellFromString(cell)
	if err != nil {
		return nil, err
	}

	disk, err := h3.GridDisk(center, k)
	if err != nil {
		return nil, e.Wrap("h3.GridDisk", err)
	}

	cells := make([]string, 0, len(disk))
	for _, c := range disk {
		cells = append(cells, c.String())
	}

	return cells, nil
}

// GridDistance возвращает сеточное расстояние между двумя ячейками.
// Симметрично: GridDistance(a,b) == GridDistance(b,a); GridDistance(a,a) == 0.
func (i *Index) GridDistance(a, b string) (int, error) {
	cellA, err := cellFromString(a)
	if err != nil {
		return 0, err
	}

	cellB, err := cellFromString(b)
	if err != nil {
		return 0, err
	}

	dist, err := h3.GridDistance(cellA, cellB)
	if err != nil {
		return 0, e.Wrap("h3.GridDistance", err)
	}

	return dist, nil
}

func cellFromString(s string) (h3.Cell, error) {
	cell := h3.Cell(h3.IndexFromString(s))
	if !cell.IsValid() {
		return 0, e.Wrap(s, e.ErrInvalidCoordinates)
	}

	return cell, nil
}
