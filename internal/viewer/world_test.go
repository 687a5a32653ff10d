package viewer

import (
	"testing"

	"github.com/Faultbox/cullkit/internal/config"
	"github.com/Faultbox/cullkit/internal/engine/scene"
)

func testSceneConfig() config.SceneConfig {
	return config.SceneConfig{
		Seed:        42,
		ObjectCount: 64,
		WorldSize:   200,
		GroupSize:   16,
	}
}

func TestGenerateWorldCounts(t *testing.T) {
	root := GenerateWorld(testSceneConfig())

	leaves, groups := 0, 0
	root.Walk(func(n *scene.Node) {
		if n.IsLeaf() {
			leaves++
		} else {
			groups++
		}
	})

	if leaves != 64 {
		t.Errorf("leaves = %d, want 64", leaves)
	}
	// root + 64/16 clusters
	if groups != 5 {
		t.Errorf("groups = %d, want 5", groups)
	}
}

func TestGenerateWorldDeterministic(t *testing.T) {
	a := GenerateWorld(testSceneConfig())
	b := GenerateWorld(testSceneConfig())

	var aNodes, bNodes []*scene.Node
	a.Walk(func(n *scene.Node) { aNodes = append(aNodes, n) })
	b.Walk(func(n *scene.Node) { bNodes = append(bNodes, n) })

	if len(aNodes) != len(bNodes) {
		t.Fatalf("node counts differ: %d vs %d", len(aNodes), len(bNodes))
	}
	for i := range aNodes {
		if aNodes[i].Name() != bNodes[i].Name() {
			t.Fatalf("node %d name %q vs %q", i, aNodes[i].Name(), bNodes[i].Name())
		}
		if aNodes[i].Transform() != bNodes[i].Transform() {
			t.Errorf("node %q transforms differ between runs", aNodes[i].Name())
		}
	}
}

func TestGenerateWorldBoundsSet(t *testing.T) {
	root := GenerateWorld(testSceneConfig())

	root.Walk(func(n *scene.Node) {
		if n.Bounds() == nil {
			t.Fatalf("node %q has no bounds", n.Name())
		}
	})
}
