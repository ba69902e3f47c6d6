package content

import (
	"testing"
)

func TestClampPage(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{7, 7},
	}
	for _, tc := range cases {
		if got := clampPage(tc.in); got != tc.want {
			t.Errorf("clampPage(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClampPerPage(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-1, DefaultPerPage},
		{0, DefaultPerPage},
		{1, 1},
		{10, 10},
		{100, 100},
		{5000, MaxPerPage},
	}
	for _, tc := range cases {
		if got := clampPerPage(tc.in); got != tc.want {
			t.Errorf("clampPerPage(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, perPage, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{66, 10, 7},
		{5, 2, 3},
		{6, 2, 3},
	}
	for _, tc := range cases {
		if got := pageCount(tc.total, tc.perPage); got != tc.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}
