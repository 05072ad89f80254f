package discovery

import (
	"fmt"
	"net"
	"strconv"

	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Config describes how the service announces itself to Consul.
type Config struct {
	ConsulAddr  string `env:"CONSUL_ADDR"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"account-service"`
	ServiceHost string `env:"SERVICE_HOST" envDefault:"localhost"`
}

// Enabled reports whether a Consul agent address is configured.
func (c Config) Enabled() bool {
	return c.ConsulAddr != ""
}

// ServiceAgent is the subset of the Consul agent API used for registration.
type ServiceAgent interface {
	ServiceRegister(service *api.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

// Registry registers a service instance with Consul.
type Registry struct {
	agent  ServiceAgent
	logger *zerolog.Logger
	id     string
}

// NewConsulRegistry connects to the Consul agent at cfg.ConsulAddr.
func NewConsulRegistry(cfg Config, logger *zerolog.Logger) (*Registry, error) {
	consulCfg := api.DefaultConfig()
	consulCfg.Address = cfg.ConsulAddr

	client, err := api.NewClient(consulCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return NewRegistry(client.Agent(), logger), nil
}

// NewRegistry creates a Registry on top of an agent.
func NewRegistry(agent ServiceAgent, logger *zerolog.Logger) *Registry {
	return &Registry{
		agent:  agent,
		logger: logger,
	}
}

// Register announces the HTTP endpoint of the service with a gRPC health check
// against healthPort.
func (r *Registry) Register(name, host string, httpPort, healthPort int) error {
	r.id = fmt.Sprintf("%s-%s", name, uuid.NewString())

	registration := &api.AgentServiceRegistration{
		ID:      r.id,
		Name:    name,
		Address: host,
		Port:    httpPort,
		Tags:    []string{"http"},
		Check: &api.AgentServiceCheck{
			GRPC:                           net.JoinHostPort(host, strconv.Itoa(healthPort)),
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := r.agent.ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service %q: %w", name, err)
	}

	r.logger.Info().Str("service_id", r.id).Msg("registered service with consul")

	return nil
}

// Deregister removes the registered instance. It is a no-op before Register.
func (r *Registry) Deregister() error {
	if r.id == "" {
		return nil
	}

	if err := r.agent.ServiceDeregister(r.id); err != nil {
		return fmt.Errorf("failed to deregister service %q: %w", r.id, err)
	}

	r.logger.Info().Str("service_id", r.id).Msg("deregistered service from consul")
	r.id = ""

	return nil
}
