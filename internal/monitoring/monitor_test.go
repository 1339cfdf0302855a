package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_AddCounter(t *testing.T) {
	m := NewMonitor()

	m.AddCounter("ws_connections_open", 1)
	m.AddCounter("ws_connections_open", 1)
	m.AddCounter("ws_connections_open", -1)

	value, exists := m.GetMetric("ws_connections_open")
	if !exists {
		t.Fatalf("Expected 'ws_connections_open' to be present, but it was not")
	}
	if value != 1 {
		t.Errorf("Expected 'ws_connections_open' to be 1, but got %v", value)
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
