package catalog

import (
	"testing"

	"swaadha/models"
)

func TestPriorityTaken(t *testing.T) {
	rows := []models.CatalogNode{
		{ID: "cat1", Name: "Snacks", Priority: 1, Active: true},
		{ID: "cat2", Name: "Sweets", Priority: 2, Active: true},
		{ID: "cat3", Name: "Retired", Priority: 3, Active: false},
	}

	if !priorityTaken(rows, 1, "") {
		t.Error("priority 1 is held by an active row, expected taken")
	}
	if priorityTaken(rows, 4, "") {
		t.Error("priority 4 is unused, expected free")
	}
	// Inactive rows don't reserve their priority
	if priorityTaken(rows, 3, "") {
		t.Error("priority 3 belongs to an inactive row, expected free")
	}
	// Editing a row keeps its own priority available to itself
	if priorityTaken(rows, 2, "cat2") {
		t.Error("row should be able to keep its own priority on edit")
	}
	if !priorityTaken(rows, 2, "cat1") {
		t.Error("another row's priority should stay taken during edit")
	}
}
