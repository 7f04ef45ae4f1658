package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/hobbyparts/hpt/internal/fakeapi"
	"github.com/hobbyparts/hpt/internal/model"
)

func sampleData() fakeapi.Data {
	return fakeapi.Data{
		Items: []model.Item{
			{ItemID: 1, ItemName: "Screws", Weight: model.Ptr(10.0), Price: model.Ptr(5.0), Image: []byte{0xff, 0xd8}},
			{ItemID: 2, ItemName: "Servo", Weight: model.Ptr(20.0), Price: model.Ptr(15.0)},
		},
		Containers: []model.Container{{ContainerID: 100, ContainerName: "Bin A", LocationID: model.Ptr[model.ID](10)}},
		Locations:  []model.Location{{LocationID: 10, LocationName: "Garage"}},
		Links:      []model.ItemLocationLink{{ItemLocationID: 1, ItemID: 1, ContainerID: 100}},
		Projects:   []model.Project{{ProjectID: 1, ProjectName: "Robot arm"}},
	}
}

func newTestClient(t *testing.T, srv *fakeapi.Server, token string) *Client {
	t.Helper()
	return New(Options{BaseURL: srv.URL + "/", Auth: AuthContext{Token: token}, HTTPClient: srv.Client()})
}

func TestSnapshotFetchesAllCollections(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()

	snap, err := newTestClient(t, srv, "").Snapshot(context.Background(), SnapshotOptions{Projects: true})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(snap.Items) != 2 || len(snap.Containers) != 1 || len(snap.Locations) != 1 || len(snap.Links) != 1 || len(snap.Projects) != 1 {
		t.Fatalf("unexpected snapshot sizes: %+v", snap)
	}
	if diff := cmp.Diff([]byte{0xff, 0xd8}, snap.Items[0].Image); diff != "" {
		t.Fatalf("base64 image not decoded (-want +got):\n%s", diff)
	}
	if snap.Items[1].Image != nil {
		t.Fatalf("missing image should decode to nil")
	}
}

func TestSnapshotSkipsProjectsUnlessRequested(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()

	if _, err := newTestClient(t, srv, "").Snapshot(context.Background(), SnapshotOptions{}); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	for _, r := range srv.Requests() {
		if r.Path == PathProjects {
			t.Fatalf("projects should not be fetched")
		}
	}
}

func TestSnapshotFailureDoesNotAbortOthers(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()
	srv.Fail(PathContainers, http.StatusInternalServerError)

	snap, err := newTestClient(t, srv, "").Snapshot(context.Background(), SnapshotOptions{})
	if err == nil {
		t.Fatalf("expected an error for the failed collection")
	}
	if diff := cmp.Diff([]Collection{CollectionContainers}, snap.Failed()); diff != "" {
		t.Fatalf("Failed() mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Items) != 2 || len(snap.Locations) != 1 || len(snap.Links) != 1 {
		t.Fatalf("other collections should still be fetched: %+v", snap)
	}
	if !strings.Contains(err.Error(), "fetch containers") {
		t.Fatalf("error should name the collection, got %v", err)
	}

	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindStatus || fe.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected a status FetchError, got %#v", err)
	}
	if IsOffline(err) {
		t.Fatalf("a status error is not offline")
	}
}

func TestSnapshotRecordsEveryFailedCollection(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()
	srv.Fail(PathItems, http.StatusBadGateway)
	srv.Fail(PathProjects, http.StatusInternalServerError)
	srv.Fail(PathLocations, http.StatusServiceUnavailable)

	snap, err := newTestClient(t, srv, "").Snapshot(context.Background(), SnapshotOptions{Projects: true})
	if err == nil {
		t.Fatalf("expected an error for the failed collections")
	}
	want := []Collection{CollectionItems, CollectionLocations, CollectionProjects}
	if diff := cmp.Diff(want, snap.Failed()); diff != "" {
		t.Fatalf("Failed() mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Containers) != 1 || len(snap.Links) != 1 {
		t.Fatalf("healthy collections should still be fetched: %+v", snap)
	}
	for _, name := range []string{"fetch items", "fetch locations", "fetch projects"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q should mention %q", err, name)
		}
	}
}

func TestNullListDecodesAsEmpty(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(fakeapi.Data{})
	defer srv.Close()

	items, err := newTestClient(t, srv, "").Items(context.Background())
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()
	srv.RequireToken("s3cret")

	if _, err := newTestClient(t, srv, "s3cret").Items(context.Background()); err != nil {
		t.Fatalf("Items() with token error = %v", err)
	}

	_, err := newTestClient(t, srv, "wrong").Items(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	reqs := srv.Requests()
	if reqs[0].Authorization != "Bearer s3cret" {
		t.Fatalf("Authorization = %q, want bearer token", reqs[0].Authorization)
	}
	if reqs[0].RequestID == "" || reqs[0].RequestID == reqs[1].RequestID {
		t.Fatalf("expected distinct request IDs, got %q and %q", reqs[0].RequestID, reqs[1].RequestID)
	}
}

func TestOfflineServer(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	url := srv.URL
	srv.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	c := New(Options{BaseURL: url, Logger: &logger})

	err := c.Health(context.Background())
	if !IsOffline(err) {
		t.Fatalf("expected offline error, got %v", err)
	}
	if !strings.Contains(buf.String(), "request failed") {
		t.Fatalf("expected the failure to be logged, got %q", buf.String())
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv, "").Items(ctx)
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindCanceled {
		t.Fatalf("expected canceled FetchError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected errors.Is(err, context.Canceled)")
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()

	if err := newTestClient(t, srv, "").Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
}
