package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/chloebrgr/docksched/core/metrics"
	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/registry"
	"github.com/chloebrgr/docksched/core/scheduling"
	"github.com/chloebrgr/docksched/infra/logger"
	"github.com/chloebrgr/docksched/infra/metrics"
	"github.com/chloebrgr/docksched/infra/mqtt"
	"github.com/chloebrgr/docksched/internal/eventbus"
)

func waitForMQTTReady(broker string, timeout time.Duration) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe")
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		lastErr = token.Error()
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for broker")
	}
	return lastErr
}

func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	conf := `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
log_type notice
log_type information
connection_messages true
log_timestamp true
`
	dir := t.TempDir()
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				HostFilePath:      path,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())
	if err := waitForMQTTReady(broker, 5*time.Second); err != nil {
		t.Logf("mosquitto not ready at %s: %v", broker, err)
		t.Skip("Mosquitto not ready after retries")
	}
	return cont, broker
}

func connectControlClient(broker string, t *testing.T) paho.Client {
	t.Helper()
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("mission-control")
	cli := paho.NewClient(opts)
	var connErr error
	time.Sleep(250 * time.Millisecond)
	for i := 0; i < 5; i++ {
		token := cli.Connect()
		token.Wait()
		connErr = token.Error()
		if connErr == nil {
			break
		}
		t.Logf("control connect attempt %d to %s: %v", i+1, broker, connErr)
		time.Sleep(time.Duration(i+1) * 100 * time.Millisecond)
	}
	if connErr != nil {
		t.Logf("control connect failed to %s: %v", broker, connErr)
		t.Skip("Mosquitto not ready after retries")
	}
	return cli
}

func testEngine(t *testing.T, sink coremetrics.MetricsSink) *scheduling.Engine {
	t.Helper()
	reg, err := registry.New([]registry.PortConfig{
		{Code: "A1"},
		{Code: "A2"},
		{Code: "B1", Capabilities: []string{"refueling"}},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	eng, err := scheduling.NewEngine(reg, scheduling.Config{}, sink, eventbus.New(), nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return eng
}

func TestMissionSchedulingWithMQTTContainer(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx := context.Background()

	cont, broker := startMosquitto(ctx, t)
	defer func() { _ = cont.Terminate(ctx) }()

	control := connectControlClient(broker, t)
	defer control.Disconnect(100)

	promReg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(coremetrics.Config{}, promReg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	eng := testEngine(t, sink)

	client, err := mqtt.NewPahoClient(mqtt.Config{
		Broker:        broker,
		ClientID:      "docksched-e2e",
		RequestTopic:  "docksched/missions/requests",
		DecisionTopic: "docksched/missions/decisions",
	})
	if err != nil {
		t.Fatalf("mqtt client: %v", err)
	}
	ing := mqtt.NewIngestor(client, client, eng)
	if err := ing.Start(); err != nil {
		t.Fatalf("ingestor: %v", err)
	}
	defer ing.Stop()

	decisions := make(chan model.Decision, 4)
	if token := control.Subscribe("docksched/missions/decisions", 0, func(_ paho.Client, m paho.Message) {
		var d model.Decision
		if err := json.Unmarshal(m.Payload(), &d); err == nil {
			decisions <- d
		}
	}); token.Wait() && token.Error() != nil {
		t.Fatalf("subscribe: %v", token.Error())
	}

	req := model.MissionRequest{
		MissionID:         "crew-7",
		RequestedPort:     "A1",
		StartTime:         time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:           time.Date(2030, 6, 1, 11, 0, 0, 0, time.UTC),
		Team:              "alpha",
		RefuelingRequired: false,
	}
	payload, _ := json.Marshal(req)
	if token := control.Publish("docksched/missions/requests", 0, false, payload); token.Wait() && token.Error() != nil {
		t.Fatalf("publish: %v", token.Error())
	}

	var dec model.Decision
	select {
	case dec = <-decisions:
	case <-time.After(10 * time.Second):
		t.Fatalf("no decision received")
	}
	if !dec.Accepted() || dec.AssignedPort != "A1" {
		t.Fatalf("unexpected decision %+v", dec)
	}

	view := eng.Snapshot()
	if len(view["A1"]) != 1 || view["A1"][0].MissionID != "crew-7" {
		t.Fatalf("schedule not updated: %+v", view["A1"])
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	metricsTS := httptest.NewServer(mux)
	defer metricsTS.Close()

	resp, err := http.Get(metricsTS.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close body: %v", err)
	}
	expected := `scheduling_decisions_total{assigned_port="A1",requested_port="A1",status="accepted"} 1`
	if !strings.Contains(string(body), expected) {
		t.Errorf("metric missing: %s", expected)
	}
}
