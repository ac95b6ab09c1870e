package scene

import (
	"testing"

	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/math"
)

func TestCollectDrawsSplitsAndSorts(t *testing.T) {
	root := model.NewNode("root")
	opaque := model.DefaultMaterial()
	glass := model.DefaultMaterial()
	glass.BaseColor[3] = 0.3

	near := model.NewNode("near")
	near.Translation = math.V3(0, 0, 4)
	near.AddMesh(model.Box(math.V3(1, 1, 1), math.Vec3{}, glass))

	far := model.NewNode("far")
	far.Translation = math.V3(0, 0, -10)
	far.AddMesh(model.Box(math.V3(1, 1, 1), math.Vec3{}, glass))

	body := model.NewNode("body")
	body.AddMesh(model.Box(math.V3(2, 1, 4), math.Vec3{}, opaque))

	root.Add(near)
	root.Add(body)
	root.Add(far)

	o, tr := collectDraws(root, math.V3(0, 0, 5))
	if len(o) != 1 || len(tr) != 2 {
		t.Fatalf("got %d opaque, %d transparent; want 1, 2", len(o), len(tr))
	}
	if tr[0].mesh != far.Meshes[0] || tr[1].mesh != near.Meshes[0] {
		t.Error("transparent meshes not sorted back to front")
	}
	if got := tr[0].world.Translation(); got != far.Translation {
		t.Errorf("far world translation = %v", got)
	}
}

func TestCollectDrawsPlaceholder(t *testing.T) {
	car := model.PlaceholderCar()
	_, meshes, _ := car.Stats()

	o, tr := collectDraws(car, math.V3(0, 0.4, 4))
	if len(o)+len(tr) != meshes {
		t.Errorf("collected %d draws, car has %d meshes", len(o)+len(tr), meshes)
	}
	if len(tr) == 0 {
		t.Error("placeholder glass not treated as transparent")
	}
}

func TestCollectDrawsNil(t *testing.T) {
	o, tr := collectDraws(nil, math.Vec3{})
	if o != nil || tr != nil {
		t.Error("nil root produced draws")
	}
}

func TestFlattenPoints(t *testing.T) {
	pts := []math.Vec3{math.V3(1, 2, 3), math.V3(4, 5, 6)}
	buf := make([]float32, 0, 1)
	buf = flattenPoints(buf, pts)
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(buf) != len(want) {
		t.Fatalf("len = %d", len(buf))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	// Reuse truncates.
	buf = flattenPoints(buf, pts[:1])
	if len(buf) != 3 {
		t.Errorf("reused len = %d, want 3", len(buf))
	}
}
