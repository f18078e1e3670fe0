package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/exprgen/internal/presentation/graph"
	"github.com/aretw0/exprgen/pkg/matrix"
)

func tinyMatrix(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.Parse([][]string{
		{"4", "1", "(", ")", "s"},
		{"start", "1", "1", "0", "1"},
		{"end", "1", "0", "1", "0"},
		{"1", "0", "0", "1", "0"},
		{"(", "1", "0", "0", "0"},
		{")", "0", "0", "1", "0"},
		{"s", "1", "0", "0", "0"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(tinyMatrix(t), nil)

	contains := []string{
		"graph LR",
		`t1["1"]`,
		`t2{{"("}}`,
		`t3{{")"}}`,
		`t4[["sin("]]`,
		"START --> t1",
		"START --> t4",
		"t2 --> t1",
		"t1 -.-> END",
		"t3 -.-> END",
	}
	for _, want := range contains {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
		}
	}

	if strings.Contains(got, "START --> t3") {
		t.Errorf("')' is not start-eligible:\n%v", got)
	}
	if strings.Contains(got, "classDef") {
		t.Errorf("unexpected overlay styles without overlay:\n%v", got)
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(tinyMatrix(t), &graph.Overlay{
		Unreachable: []string{")"},
		DeadEnds:    []string{"sin(", "missing"},
	})

	for _, want := range []string{"class t3 unreachable;", "class t4 deadend;"} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
		}
	}
}
