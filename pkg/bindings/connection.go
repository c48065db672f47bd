package bindings

import (
	"context"
	"net/url"
	"strings"

	"github.com/containers/docker-cp/pkg/define"
	"github.com/docker/docker/client"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type dockerClient struct {
	cli *client.Client
}

// NewConnection connects to the container engine at uri and pings it.  An
// empty uri falls back to DOCKER_HOST and the platform default socket.
//
// A valid URI connection should be scheme://
// For example tcp://localhost:<port>
// or unix:///run/podman/podman.sock
func NewConnection(ctx context.Context, uri string) (Client, error) {
	clientOpts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if uri != "" {
		if err := validateURI(uri); err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, client.WithHost(uri))
	}

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, define.Kind(define.ErrConnection, errors.Wrap(err, "creating engine client"))
	}

	logrus.Debugf("Pinging container engine at %s", cli.DaemonHost())
	ping, err := cli.Ping(ctx)
	if err != nil {
		cli.Close()
		return nil, define.Kind(define.ErrConnection, errors.Wrapf(err, "pinging %s", cli.DaemonHost()))
	}
	logrus.Debugf("Connected to container engine at %s (API %s, OS %s)", cli.DaemonHost(), ping.APIVersion, ping.OSType)
	return &dockerClient{cli: cli}, nil
}

func validateURI(uri string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return define.Kind(define.ErrConnection, errors.Wrapf(err, "parsing engine URI %q", uri))
	}
	switch u.Scheme {
	case "tcp":
		if !strings.HasPrefix(uri, "tcp://") {
			return define.Kind(define.ErrConnection, errors.New("tcp URIs should begin with tcp://"))
		}
	case "unix", "npipe", "http", "https":
	default:
		return define.Kind(define.ErrConnection, errors.Errorf("%q is not a supported schema", u.Scheme))
	}
	return nil
}

func (c *dockerClient) Container(ctx context.Context, nameOrID string) (Container, error) {
	inspect, err := c.cli.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return nil, classifyError(err, define.ErrNoSuchCtr)
	}
	if inspect.ContainerJSONBase == nil {
		return nil, errors.Wrapf(define.ErrAPI, "engine returned no details for container %q", nameOrID)
	}
	return &dockerContainer{
		cli:  c.cli,
		id:   inspect.ID,
		name: strings.TrimPrefix(inspect.Name, "/"),
	}, nil
}

func (c *dockerClient) Close() error {
	return c.cli.Close()
}
