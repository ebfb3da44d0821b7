package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"sphere-grid", "Sphere Grid"},
		{"hollow_glass", "Hollow Glass"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}

func TestCreate_AllScenes(t *testing.T) {
	for _, id := range SceneIDs() {
		t.Run(id, func(t *testing.T) {
			s, err := Create(id)
			require.NoError(t, err)
			require.NotNil(t, s.Camera)
			assert.NotEmpty(t, s.Shapes)
			assert.Positive(t, s.SamplingConfig.Width)
			assert.Positive(t, s.SamplingConfig.Height)
			assert.Positive(t, s.SamplingConfig.SamplesPerPixel)
			assert.Positive(t, s.SamplingConfig.MaxDepth)
		})
	}
}

func TestCreate_CaseInsensitive(t *testing.T) {
	s, err := Create("Default")
	require.NoError(t, err)
	assert.Len(t, s.Shapes, 8)
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("cornell-box")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownScene))
	assert.Contains(t, err.Error(), "default")
}

func TestCreate_CameraOverride(t *testing.T) {
	s, err := Create("simple", geometry.CameraConfig{AspectRatio: 1.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.CameraConfig.AspectRatio)
	assert.Equal(t, core.NewVec3(0, 0, -1), s.CameraConfig.LookAt)
}

func TestListAllScenes(t *testing.T) {
	response := ListAllScenes()
	require.Len(t, response.Groups, 2)
	assert.Equal(t, groupShowcase, response.Groups[0].Name)
	assert.Equal(t, groupReference, response.Groups[1].Name)

	total := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			assert.Equal(t, group.Name, info.Group)
			_, err := Create(info.ID)
			assert.NoError(t, err, "listed scene %q must be creatable", info.ID)
		}
		total += len(group.Scenes)
	}
	assert.Equal(t, len(SceneIDs()), total)
}

func TestRandomScene_Deterministic(t *testing.T) {
	a := NewRandomScene()
	b := NewRandomScene()
	require.Equal(t, len(a.Shapes), len(b.Shapes))
	for i := range a.Shapes {
		assert.Equal(t, a.Shapes[i].(*geometry.Sphere).Center, b.Shapes[i].(*geometry.Sphere).Center)
	}
}
