package connection_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solhello/internal/rpc"
	"solhello/internal/rpc/rpctest"
	"solhello/internal/services/connection"
	"solhello/internal/util/console"
)

func TestEstablishConnection(t *testing.T) {
	cluster := rpctest.New(t)
	var out bytes.Buffer
	svc := connection.New(rpc.New(cluster.URL()), console.New(&out, &out, false), zaptest.NewLogger(t))

	require.NoError(t, svc.EstablishConnection(context.Background()))
	require.Equal(t, "1.18.26", svc.Version().SolanaCore)
	require.Equal(t,
		"Connection to cluster established: "+cluster.URL()+" 1.18.26 (feature set 3241752014)\n",
		out.String())
}

func TestEstablishConnection_RPCError(t *testing.T) {
	cluster := rpctest.New(t)
	cluster.Fail("getVersion", "node is behind")
	var out bytes.Buffer
	svc := connection.New(rpc.New(cluster.URL()), console.New(&out, &out, false), zaptest.NewLogger(t))

	err := svc.EstablishConnection(context.Background())
	require.Error(t, err)
	var rpcErr *rpc.Error
	require.True(t, errors.As(err, &rpcErr))
	require.Equal(t, "getVersion", rpcErr.Method)
	require.Contains(t, err.Error(), "node is behind")
	require.Empty(t, out.String())
}
