package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/harborview-io/harborview/internal/models"
)

// serviceRoute maps a service type to its detail endpoint and the query
// parameter carrying the service ID.
type serviceRoute struct {
	path     string
	paramKey string
}

var serviceRoutes = map[models.ServiceType]serviceRoute{
	models.ServiceApplication: {"application.one", "applicationId"},
	models.ServiceCompose:     {"compose.one", "composeId"},
	models.ServiceMariaDB:     {"mariadb.one", "mariadbId"},
	models.ServiceMongo:       {"mongo.one", "mongoId"},
	models.ServiceMySQL:       {"mysql.one", "mysqlId"},
	models.ServicePostgres:    {"postgres.one", "postgresId"},
	models.ServiceRedis:       {"redis.one", "redisId"},
}

// GetService fetches the detail record of a service. The returned Service
// carries the deployments found anywhere in the payload.
func (c *Client) GetService(ctx context.Context, serviceType models.ServiceType, serviceID string) (*models.Service, *RequestError) {
	route, ok := serviceRoutes[serviceType]
	if !ok {
		return nil, newGenericError(fmt.Sprintf("unknown service type %q", serviceType))
	}

	query := url.Values{route.paramKey: {serviceID}}
	raw, reqErr := c.Get(ctx, route.path, query)
	if reqErr != nil {
		return nil, reqErr
	}

	d := Decode[models.Service](raw)
	if d.Malformed {
		return nil, newGenericError("malformed service response")
	}
	svc := d.Value
	if len(svc.Deployments) == 0 {
		svc.Deployments = ExtractDeployments(raw)
	}
	return &svc, nil
}
