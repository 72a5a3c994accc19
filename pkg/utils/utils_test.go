package utils_test

import (
	"strconv"
	"testing"

	"github.com/biosimkit/biosimkit/pkg/utils"
)

func TestMap(t *testing.T) {
	actual := utils.Map([]int{1, 2, 3}, strconv.Itoa)
	expected := []string{"1", "2", "3"}

	if len(actual) != len(expected) {
		t.Fatalf("mismatch. (expected, actual) = (%v, %v)", expected, actual)
	}
	for nth := range expected {
		if actual[nth] != expected[nth] {
			t.Errorf("mismatch. (expected, actual) = (%v, %v)", expected, actual)
		}
	}
}

func TestFirst(t *testing.T) {
	t.Run("it finds the first match", func(t *testing.T) {
		found, ok := utils.First([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
		if !ok || found != 2 {
			t.Errorf("mismatch. (expected, actual) = (%v, %v)", 2, found)
		}
	})
	t.Run("it reports when nothing matches", func(t *testing.T) {
		_, ok := utils.First([]int{1, 3}, func(v int) bool { return v%2 == 0 })
		if ok {
			t.Error("found, unexpectedly.")
		}
	})
}

func TestToMap(t *testing.T) {
	actual := utils.ToMap([]string{"a", "bb", "cc"}, func(v string) int { return len(v) })
	if len(actual) != 2 {
		t.Fatalf("unexpected size: %v", actual)
	}
	if actual[1] != "a" {
		t.Errorf("mismatch. (expected, actual) = (%v, %v)", "a", actual[1])
	}

	// latter value takes over on key collision
	if actual[2] != "cc" {
		t.Errorf("mismatch. (expected, actual) = (%v, %v)", "cc", actual[2])
	}
}

func TestFilter(t *testing.T) {
	actual := utils.Filter([]int{1, 2, 3, 4, 5}, func(v int) bool { return v%2 == 1 })
	expected := []int{1, 3, 5}

	if len(actual) != len(expected) {
		t.Fatalf("mismatch. (expected, actual) = (%v, %v)", expected, actual)
	}
	for nth := range expected {
		if actual[nth] != expected[nth] {
			t.Errorf("mismatch. (expected, actual) = (%v, %v)", expected, actual)
		}
	}
}
