package split

import (
	"reflect"
	"testing"
)

func TestNormalizeMembers(t *testing.T) {
	tests := []struct {
		name      string
		createdBy string
		members   []string
		want      []string
	}{
		{
			name:      "creator appended when missing",
			createdBy: "owner@x.com",
			members:   []string{"a@x.com", "b@x.com"},
			want:      []string{"a@x.com", "b@x.com", "owner@x.com"},
		},
		{
			name:      "creator already present keeps position",
			createdBy: "a@x.com",
			members:   []string{"a@x.com", "b@x.com"},
			want:      []string{"a@x.com", "b@x.com"},
		},
		{
			name:      "duplicates collapse to first occurrence",
			createdBy: "owner@x.com",
			members:   []string{"a@x.com", "b@x.com", "a@x.com", "b@x.com"},
			want:      []string{"a@x.com", "b@x.com", "owner@x.com"},
		},
		{
			name:      "empty members yields creator only",
			createdBy: "owner@x.com",
			members:   nil,
			want:      []string{"owner@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMembers(tt.createdBy, tt.members)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeMembers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeMembersDeterministic(t *testing.T) {
	members := []string{"c@x.com", "a@x.com", "b@x.com", "a@x.com"}
	first := NormalizeMembers("z@x.com", members)
	second := NormalizeMembers("z@x.com", members)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different output: %v vs %v", first, second)
	}
}
