package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/hobbyparts/hpt/internal/fakeapi"
	"github.com/hobbyparts/hpt/internal/model"
)

func mutatingRequests(srv *fakeapi.Server) []string {
	var out []string
	for _, r := range srv.Requests() {
		if r.Method != http.MethodGet {
			out = append(out, r.Method+" "+r.Path)
		}
	}
	return out
}

func TestSetItemPlacementDeletesThenInserts(t *testing.T) {
	t.Parallel()

	data := sampleData()
	// Two rows for item 1: the duplicate must be cleaned up as well.
	data.Links = append(data.Links, model.ItemLocationLink{ItemLocationID: 5, ItemID: 1, ContainerID: 100})
	data.Containers = append(data.Containers, model.Container{ContainerID: 200, ContainerName: "Bin B"})
	srv := fakeapi.New(data)
	defer srv.Close()

	res, err := newTestClient(t, srv, "").SetItemPlacement(context.Background(), 1, model.Ptr[model.ID](200))
	if err != nil {
		t.Fatalf("SetItemPlacement() error = %v", err)
	}

	want := []string{
		"DELETE " + PathDeleteItemLocation + "1",
		"DELETE " + PathDeleteItemLocation + "5",
		"POST " + PathAddItemLocation,
	}
	got := mutatingRequests(srv)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("request sequence = %v, want %v", got, want)
	}

	if len(res.Deleted) != 2 {
		t.Fatalf("expected 2 deleted links, got %d", len(res.Deleted))
	}
	if res.Created == nil || res.Created.ContainerID != 200 || res.Created.ItemLocationID == 0 {
		t.Fatalf("unexpected created link: %+v", res.Created)
	}

	links := srv.Links()
	if len(links) != 1 || links[0].ItemID != 1 || links[0].ContainerID != 200 {
		t.Fatalf("expected a single link to container 200, got %+v", links)
	}
}

func TestSetItemPlacementUnassign(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()

	res, err := newTestClient(t, srv, "").SetItemPlacement(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("SetItemPlacement() error = %v", err)
	}
	if res.Created != nil {
		t.Fatalf("unassign must not create a link")
	}
	if len(srv.Links()) != 0 {
		t.Fatalf("expected no links left, got %+v", srv.Links())
	}
}

func TestSetItemPlacementInsertFailureLeavesItemUnassigned(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()
	srv.Fail(PathAddItemLocation, http.StatusInternalServerError)

	res, err := newTestClient(t, srv, "").SetItemPlacement(context.Background(), 1, model.Ptr[model.ID](100))
	if err == nil {
		t.Fatalf("expected insert failure")
	}
	if !strings.Contains(err.Error(), "now unassigned") {
		t.Fatalf("error should say the item is unassigned, got %v", err)
	}
	if len(res.Deleted) != 1 {
		t.Fatalf("result should record the deleted link, got %+v", res.Deleted)
	}
	if len(srv.Links()) != 0 {
		t.Fatalf("the old link stays deleted")
	}
}

func TestSetItemPlacementNewItem(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New(sampleData())
	defer srv.Close()

	res, err := newTestClient(t, srv, "").SetItemPlacement(context.Background(), 2, model.Ptr[model.ID](100))
	if err != nil {
		t.Fatalf("SetItemPlacement() error = %v", err)
	}
	if len(res.Deleted) != 0 {
		t.Fatalf("nothing to delete for a loose item, got %+v", res.Deleted)
	}
	if got := mutatingRequests(srv); len(got) != 1 || got[0] != "POST "+PathAddItemLocation {
		t.Fatalf("expected only an insert, got %v", got)
	}
}
