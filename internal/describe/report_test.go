package describe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charliek/ktail/internal/kube"
)

func TestRender_FullReport(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &kube.PodReport{
		Name:        "web-1",
		Namespace:   "default",
		Phase:       "Running",
		PodIP:       "10.0.0.7",
		CPULimit:    "500m",
		MemoryLimit: "256Mi",
		Events: []kube.EventInfo{
			{Type: "Warning", Reason: "BackOff", Message: "restarting failed container"},
			{Type: "Normal", Reason: "Started", Message: "started container app"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "POD VITAL SIGNS")
	assert.Contains(t, out, "default/web-1")
	assert.Contains(t, out, "10.0.0.7")
	assert.Contains(t, out, "CPU: 500m, Mem: 256Mi")
	assert.Contains(t, out, "BackOff")
	assert.Contains(t, out, "restarting failed container")
}

func TestRender_NoEvents(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &kube.PodReport{Name: "web-1", Namespace: "default", Phase: "Pending"})

	assert.Contains(t, buf.String(), "(no recent events)")
}

func TestRender_MissingLimitsOmitted(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &kube.PodReport{Name: "web-1", Namespace: "default", Phase: "Running"})

	assert.NotContains(t, buf.String(), "Limits")
}
