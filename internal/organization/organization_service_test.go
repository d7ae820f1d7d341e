package organization_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hrm/internal/organization"
	organizationerrors "go-hrm/internal/organization/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeOrgRepo struct {
	organization.Repository

	createNode         func(ctx context.Context, level organization.Level, node *organization.Node) error
	findNodeByID       func(ctx context.Context, level organization.Level, id string) (*organization.Node, error)
	findActiveChildren func(ctx context.Context, level organization.Level, parentID string) ([]organization.Node, error)
	countEmployeeRefs  func(ctx context.Context, level organization.Level, id string) (int64, error)
	countChildNodes    func(ctx context.Context, level organization.Level, parentID string) (int64, error)
	deleteNode         func(ctx context.Context, level organization.Level, id string) error
}

func (f *fakeOrgRepo) CreateNode(ctx context.Context, level organization.Level, node *organization.Node) error {
	return f.createNode(ctx, level, node)
}

func (f *fakeOrgRepo) FindNodeByID(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
	return f.findNodeByID(ctx, level, id)
}

func (f *fakeOrgRepo) FindActiveChildren(ctx context.Context, level organization.Level, parentID string) ([]organization.Node, error) {
	return f.findActiveChildren(ctx, level, parentID)
}

func (f *fakeOrgRepo) CountEmployeeRefs(ctx context.Context, level organization.Level, id string) (int64, error) {
	return f.countEmployeeRefs(ctx, level, id)
}

func (f *fakeOrgRepo) CountChildNodes(ctx context.Context, level organization.Level, parentID string) (int64, error) {
	return f.countChildNodes(ctx, level, parentID)
}

func (f *fakeOrgRepo) DeleteNode(ctx context.Context, level organization.Level, id string) error {
	return f.deleteNode(ctx, level, id)
}

func TestChildren_UnknownParentReturnsEmpty(t *testing.T) {
	repo := &fakeOrgRepo{
		findActiveChildren: func(ctx context.Context, level organization.Level, parentID string) ([]organization.Node, error) {
			return []organization.Node{}, nil
		},
	}
	svc := organization.NewService(repo, nil)

	opts, err := svc.Children(context.Background(), "division", uuid.NewString())

	assert.NoError(t, err)
	assert.Empty(t, opts)
}

func TestChildren_MalformedParentReturnsEmptyWithoutQuery(t *testing.T) {
	called := false
	repo := &fakeOrgRepo{
		findActiveChildren: func(ctx context.Context, level organization.Level, parentID string) ([]organization.Node, error) {
			called = true
			return nil, nil
		},
	}
	svc := organization.NewService(repo, nil)

	opts, err := svc.Children(context.Background(), "division", "not-a-uuid")

	assert.NoError(t, err)
	assert.Empty(t, opts)
	assert.False(t, called)
}

func TestChildren_LeafLevelReturnsEmpty(t *testing.T) {
	svc := organization.NewService(&fakeOrgRepo{}, nil)

	opts, err := svc.Children(context.Background(), "line", uuid.NewString())

	assert.NoError(t, err)
	assert.Empty(t, opts)
}

func TestChildren_UnknownLevelFails(t *testing.T) {
	svc := organization.NewService(&fakeOrgRepo{}, nil)

	_, err := svc.Children(context.Background(), "region", uuid.NewString())

	assert.ErrorIs(t, err, organizationerrors.ErrUnknownLevel)
}

func TestChildren_OrderedActiveOptions(t *testing.T) {
	parentID := uuid.New()
	repo := &fakeOrgRepo{
		findActiveChildren: func(ctx context.Context, level organization.Level, gotParent string) ([]organization.Node, error) {
			assert.Equal(t, organization.LevelDepartment, level)
			assert.Equal(t, parentID.String(), gotParent)
			return []organization.Node{
				{ID: uuid.New(), Name: "Assembly", IsActive: true},
				{ID: uuid.New(), Name: "Finishing", IsActive: true},
			}, nil
		},
	}
	svc := organization.NewService(repo, nil)

	opts, err := svc.Children(context.Background(), "division", parentID.String())

	assert.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Equal(t, "Assembly", opts[0].Name)
	assert.Equal(t, "Finishing", opts[1].Name)
}

func TestChildren_CacheHitSkipsRepository(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	parentID := uuid.NewString()

	cached, _ := json.Marshal([]organization.Option{{ID: "n1", Name: "Cutting"}})
	redisMock.ExpectGet("org:options:department:" + parentID).SetVal(string(cached))

	called := false
	repo := &fakeOrgRepo{
		findActiveChildren: func(ctx context.Context, level organization.Level, gotParent string) ([]organization.Node, error) {
			called = true
			return nil, nil
		},
	}
	svc := organization.NewService(repo, rdb)

	opts, err := svc.Children(context.Background(), "division", parentID)

	assert.NoError(t, err)
	assert.Len(t, opts, 1)
	assert.Equal(t, "Cutting", opts[0].Name)
	assert.False(t, called)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCreateNode_RootRejectsParent(t *testing.T) {
	svc := organization.NewService(&fakeOrgRepo{}, nil)

	_, err := svc.CreateNode(context.Background(), "group", organization.CreateNodeRequest{
		Name:     "Apex Group",
		Code:     "GRP-01",
		ParentID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, organizationerrors.ErrParentNotAllowed)
}

func TestCreateNode_NonRootRequiresParent(t *testing.T) {
	svc := organization.NewService(&fakeOrgRepo{}, nil)

	_, err := svc.CreateNode(context.Background(), "division", organization.CreateNodeRequest{
		Name: "Knitting",
		Code: "DIV-01",
	})

	assert.ErrorIs(t, err, organizationerrors.ErrParentRequired)
}

func TestCreateNode_ParentMustExistOneLevelUp(t *testing.T) {
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			assert.Equal(t, organization.LevelCompanyUnit, level)
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := organization.NewService(repo, nil)

	_, err := svc.CreateNode(context.Background(), "division", organization.CreateNodeRequest{
		Name:     "Knitting",
		Code:     "DIV-01",
		ParentID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, organizationerrors.ErrParentNotFound)
}

func TestDeleteNode_ReferencedByEmployeeRefused(t *testing.T) {
	nodeID := uuid.New()
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			return &organization.Node{ID: nodeID, Name: "Sewing", IsActive: true}, nil
		},
		countEmployeeRefs: func(ctx context.Context, level organization.Level, id string) (int64, error) {
			return 3, nil
		},
		deleteNode: func(ctx context.Context, level organization.Level, id string) error {
			t.Fatal("delete must not be reached for a referenced node")
			return nil
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.DeleteNode(context.Background(), "section", nodeID.String())

	assert.ErrorIs(t, err, organizationerrors.ErrNodeReferenced)
}

func TestDeleteNode_WithChildNodesRefused(t *testing.T) {
	nodeID := uuid.New()
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			return &organization.Node{ID: nodeID, Name: "Cutting", IsActive: true}, nil
		},
		countEmployeeRefs: func(ctx context.Context, level organization.Level, id string) (int64, error) {
			return 0, nil
		},
		countChildNodes: func(ctx context.Context, level organization.Level, parentID string) (int64, error) {
			assert.Equal(t, organization.LevelSection, level)
			assert.Equal(t, nodeID.String(), parentID)
			return 2, nil
		},
		deleteNode: func(ctx context.Context, level organization.Level, id string) error {
			t.Fatal("delete must not be reached for a node with children")
			return nil
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.DeleteNode(context.Background(), "section", nodeID.String())

	assert.ErrorIs(t, err, organizationerrors.ErrNodeReferenced)
}

func TestDeleteNode_LeafWithoutRefsDeleted(t *testing.T) {
	nodeID := uuid.New()
	deleted := false
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			return &organization.Node{ID: nodeID, Name: "Line 4", IsActive: true}, nil
		},
		countEmployeeRefs: func(ctx context.Context, level organization.Level, id string) (int64, error) {
			return 0, nil
		},
		countChildNodes: func(ctx context.Context, level organization.Level, parentID string) (int64, error) {
			return 0, nil
		},
		deleteNode: func(ctx context.Context, level organization.Level, id string) error {
			deleted = true
			return nil
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.DeleteNode(context.Background(), "line", nodeID.String())

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestValidateChain_ConsistentChainPasses(t *testing.T) {
	groupID := uuid.New()
	unitID := uuid.New()
	divisionID := uuid.New()

	nodes := map[string]*organization.Node{
		groupID.String():    {ID: groupID, Name: "Apex", IsActive: true},
		unitID.String():     {ID: unitID, Name: "Unit 2", ParentID: &groupID, IsActive: true},
		divisionID.String(): {ID: divisionID, Name: "Knitting", ParentID: &unitID, IsActive: true},
	}
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			n, ok := nodes[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return n, nil
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.ValidateChain(context.Background(), organization.Chain{
		GroupID:       groupID.String(),
		CompanyUnitID: unitID.String(),
		DivisionID:    divisionID.String(),
	})

	assert.NoError(t, err)
}

func TestValidateChain_WrongParentFails(t *testing.T) {
	groupID := uuid.New()
	otherGroupID := uuid.New()
	unitID := uuid.New()

	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			switch id {
			case groupID.String():
				return &organization.Node{ID: groupID, IsActive: true}, nil
			case unitID.String():
				return &organization.Node{ID: unitID, ParentID: &otherGroupID, IsActive: true}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.ValidateChain(context.Background(), organization.Chain{
		GroupID:       groupID.String(),
		CompanyUnitID: unitID.String(),
	})

	assert.ErrorIs(t, err, organizationerrors.ErrBrokenChain)
}

func TestValidateChain_InactiveNodeFails(t *testing.T) {
	groupID := uuid.New()
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			return &organization.Node{ID: groupID, IsActive: false}, nil
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.ValidateChain(context.Background(), organization.Chain{GroupID: groupID.String()})

	assert.Error(t, err)
}

func TestValidateChain_SkipsUnassignedLevels(t *testing.T) {
	groupID := uuid.New()
	unitID := uuid.New()

	calls := 0
	repo := &fakeOrgRepo{
		findNodeByID: func(ctx context.Context, level organization.Level, id string) (*organization.Node, error) {
			calls++
			switch id {
			case groupID.String():
				return &organization.Node{ID: groupID, IsActive: true}, nil
			case unitID.String():
				return &organization.Node{ID: unitID, ParentID: &groupID, IsActive: true}, nil
			}
			return nil, errors.New("unexpected lookup")
		},
	}
	svc := organization.NewService(repo, nil)

	err := svc.ValidateChain(context.Background(), organization.Chain{
		GroupID:       groupID.String(),
		CompanyUnitID: unitID.String(),
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
