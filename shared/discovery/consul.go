package discovery

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration is a handle to a consul service registration.
type Registration struct {
	client    *api.Client
	serviceID string
	logger    *zerolog.Logger
}

// Register announces the service to consul with an HTTP health check on
// /healthz. The returned Registration deregisters on Close.
func Register(logger *zerolog.Logger, consulAddr, serviceName, advertiseAddr string, advertisePort int) (*Registration, error) {
	client, err := api.NewClient(&api.Config{Address: consulAddr})
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	serviceID := fmt.Sprintf("%s-%s-%d", serviceName, advertiseAddr, advertisePort)

	registration := &api.AgentServiceRegistration{
		ID:      serviceID,
		Name:    serviceName,
		Address: advertiseAddr,
		Port:    advertisePort,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/healthz", advertiseAddr, advertisePort),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return nil, fmt.Errorf("failed to register service with consul: %w", err)
	}

	logger.Info().Str("service_id", serviceID).Msg("registered with consul")

	return &Registration{
		client:    client,
		serviceID: serviceID,
		logger:    logger,
	}, nil
}

// Close deregisters the service.
func (r *Registration) Close() {
	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		r.logger.Error().Err(err).Msg("failed to deregister service from consul")
		return
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("deregistered from consul")
}
