package organization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	organizationerrors "go-hrm/internal/organization/errors"
	"go-hrm/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	optionsKeyPrefix = "org:options:"
	optionsTTL       = 30 * time.Minute
)

func optionsKey(level Level, parentID string) string {
	if parentID == "" {
		parentID = "root"
	}
	return fmt.Sprintf("%s%s:%s", optionsKeyPrefix, level, parentID)
}

type Service interface {
	CreateNode(ctx context.Context, level string, req CreateNodeRequest) (NodeResponse, error)
	GetAllNodes(ctx context.Context, level string) ([]NodeResponse, error)
	GetNode(ctx context.Context, level, id string) (NodeResponse, error)
	UpdateNode(ctx context.Context, level, id string, req UpdateNodeRequest) (NodeResponse, error)
	DeleteNode(ctx context.Context, level, id string) error

	// RootOptions lists active groups; Children resolves active child nodes
	// of the given parent one level down. Both return {id,name} pairs ordered
	// by name and never fail on an unknown or inactive parent.
	RootOptions(ctx context.Context) ([]Option, error)
	Children(ctx context.Context, level, parentID string) ([]Option, error)

	// ValidateChain checks that every selected node exists, is active, and
	// hangs off the node selected one level up.
	ValidateChain(ctx context.Context, chain Chain) error

	CreateDesignation(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAllDesignations(ctx context.Context) ([]DesignationResponse, error)
	GetDesignation(ctx context.Context, id string) (DesignationResponse, error)
	DesignationOptions(ctx context.Context, departmentID string) ([]Option, error)
	UpdateDesignation(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("organization.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("organization.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) CreateNode(ctx context.Context, level string, req CreateNodeRequest) (NodeResponse, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return NodeResponse{}, organizationerrors.ErrUnknownLevel
	}

	node := &Node{
		ID:       uuid.New(),
		Name:     req.Name,
		Code:     req.Code,
		IsActive: true,
	}

	if lvl.IsRoot() {
		if req.ParentID != "" {
			return NodeResponse{}, organizationerrors.ErrParentNotAllowed
		}
	} else {
		if req.ParentID == "" {
			return NodeResponse{}, organizationerrors.ErrParentRequired
		}
		parentLevel, _ := lvl.Parent()
		parent, err := s.repo.FindNodeByID(ctx, parentLevel, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NodeResponse{}, organizationerrors.ErrParentNotFound
			}
			return NodeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to resolve parent node", 500)
		}
		node.ParentID = &parent.ID
	}

	if err := s.repo.CreateNode(ctx, lvl, node); err != nil {
		if isUniqueViolation(err) {
			return NodeResponse{}, organizationerrors.ErrDuplicateName
		}
		s.logger.Error("create hierarchy node failed", zap.String("level", level), zap.Error(err))
		return NodeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to create node", 500)
	}

	s.invalidateOptions(ctx, lvl, node.ParentID)

	s.logger.Info("hierarchy node created",
		zap.String("level", level),
		zap.String("node_id", node.ID.String()),
		zap.String("name", node.Name),
	)

	return mapNode(lvl, *node), nil
}

func (s *service) GetAllNodes(ctx context.Context, level string) ([]NodeResponse, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return nil, organizationerrors.ErrUnknownLevel
	}

	nodes, err := s.repo.FindAllNodes(ctx, lvl)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to list nodes", 500)
	}

	out := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = mapNode(lvl, n)
	}
	return out, nil
}

func (s *service) GetNode(ctx context.Context, level, id string) (NodeResponse, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return NodeResponse{}, organizationerrors.ErrUnknownLevel
	}

	node, err := s.repo.FindNodeByID(ctx, lvl, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NodeResponse{}, organizationerrors.ErrNodeNotFound
		}
		return NodeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch node", 500)
	}

	return mapNode(lvl, *node), nil
}

func (s *service) UpdateNode(ctx context.Context, level, id string, req UpdateNodeRequest) (NodeResponse, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return NodeResponse{}, organizationerrors.ErrUnknownLevel
	}

	node, err := s.repo.FindNodeByID(ctx, lvl, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NodeResponse{}, organizationerrors.ErrNodeNotFound
		}
		return NodeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch node", 500)
	}

	node.Name = req.Name
	node.Code = req.Code
	if req.IsActive != nil {
		node.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateNode(ctx, lvl, node); err != nil {
		if isUniqueViolation(err) {
			return NodeResponse{}, organizationerrors.ErrDuplicateName
		}
		s.logger.Error("update hierarchy node failed", zap.String("node_id", id), zap.Error(err))
		return NodeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to update node", 500)
	}

	s.invalidateOptions(ctx, lvl, node.ParentID)

	return mapNode(lvl, *node), nil
}

func (s *service) DeleteNode(ctx context.Context, level, id string) error {
	lvl, ok := ParseLevel(level)
	if !ok {
		return organizationerrors.ErrUnknownLevel
	}

	node, err := s.repo.FindNodeByID(ctx, lvl, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return organizationerrors.ErrNodeNotFound
		}
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch node", 500)
	}

	refs, err := s.repo.CountEmployeeRefs(ctx, lvl, id)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to check node references", 500)
	}
	if refs > 0 {
		s.logger.Warn("refused delete of referenced hierarchy node",
			zap.String("level", level),
			zap.String("node_id", id),
			zap.Int64("employee_refs", refs),
		)
		return organizationerrors.ErrNodeReferenced
	}

	children, err := s.repo.CountChildNodes(ctx, lvl, id)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to check node references", 500)
	}
	if children > 0 {
		s.logger.Warn("refused delete of referenced hierarchy node",
			zap.String("level", level),
			zap.String("node_id", id),
			zap.Int64("child_nodes", children),
		)
		return organizationerrors.ErrNodeReferenced
	}

	if err := s.repo.DeleteNode(ctx, lvl, id); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to delete node", 500)
	}

	s.invalidateOptions(ctx, lvl, node.ParentID)

	return nil
}

func (s *service) RootOptions(ctx context.Context) ([]Option, error) {
	return s.cachedOptions(ctx, optionsKey(LevelGroup, ""), func() ([]Node, error) {
		nodes, err := s.repo.FindAllNodes(ctx, LevelGroup)
		if err != nil {
			return nil, err
		}
		active := nodes[:0]
		for _, n := range nodes {
			if n.IsActive {
				active = append(active, n)
			}
		}
		return active, nil
	})
}

func (s *service) Children(ctx context.Context, level, parentID string) ([]Option, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return nil, organizationerrors.ErrUnknownLevel
	}

	childLevel, ok := lvl.Child()
	if !ok {
		return []Option{}, nil
	}

	// A malformed parent id yields an empty list, same as an unknown one.
	if _, err := uuid.Parse(parentID); err != nil {
		return []Option{}, nil
	}

	return s.cachedOptions(ctx, optionsKey(childLevel, parentID), func() ([]Node, error) {
		return s.repo.FindActiveChildren(ctx, childLevel, parentID)
	})
}

func (s *service) cachedOptions(ctx context.Context, cacheKey string, load func() ([]Node, error)) ([]Option, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var opts []Option
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		nodes, err := load()
		if err != nil {
			return nil, err
		}

		opts := make([]Option, len(nodes))
		for i, n := range nodes {
			opts[i] = Option{ID: n.ID.String(), Name: n.Name}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(opts); err == nil {
				s.rdb.Set(ctx, cacheKey, data, optionsTTL)
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to resolve options", 500)
	}

	return v.([]Option), nil
}

func (s *service) invalidateOptions(ctx context.Context, level Level, parentID *uuid.UUID) {
	if s.rdb == nil {
		return
	}

	key := optionsKey(level, "")
	if parentID != nil {
		key = optionsKey(level, parentID.String())
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("options cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) ValidateChain(ctx context.Context, chain Chain) error {
	ids := chain.ordered()
	levels := Levels()

	for i, id := range ids {
		if id == "" {
			continue
		}

		lvl := levels[i]
		node, err := s.repo.FindNodeByID(ctx, lvl, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidField(lvl.String() + "_id")
			}
			return apperror.Wrap(err, apperror.CodeInternalError, "Failed to validate hierarchy chain", 500)
		}

		if !node.IsActive {
			return apperror.InvalidField(lvl.String() + "_id")
		}

		if lvl.IsRoot() {
			continue
		}

		parentSelected := ids[i-1]
		if parentSelected == "" || node.ParentID == nil || node.ParentID.String() != parentSelected {
			return organizationerrors.ErrBrokenChain
		}
	}

	return nil
}

func (s *service) CreateDesignation(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	if _, err := s.repo.FindNodeByID(ctx, LevelDepartment, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, organizationerrors.ErrNodeNotFound
		}
		return DesignationResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to resolve department", 500)
	}

	minSalary, maxSalary, err := parseSalaryBand(req.MinSalary, req.MaxSalary)
	if err != nil {
		return DesignationResponse{}, err
	}

	d := &Designation{
		ID:           uuid.New(),
		Title:        req.Title,
		Code:         req.Code,
		DepartmentID: uuid.MustParse(req.DepartmentID),
		Level:        req.Level,
		MinSalary:    minSalary,
		MaxSalary:    maxSalary,
		IsActive:     true,
	}

	if err := s.repo.CreateDesignation(ctx, d); err != nil {
		return DesignationResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to create designation", 500)
	}

	return mapDesignation(*d), nil
}

func (s *service) GetAllDesignations(ctx context.Context) ([]DesignationResponse, error) {
	all, err := s.repo.FindAllDesignations(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to list designations", 500)
	}

	out := make([]DesignationResponse, len(all))
	for i, d := range all {
		out[i] = mapDesignation(d)
	}
	return out, nil
}

func (s *service) GetDesignation(ctx context.Context, id string) (DesignationResponse, error) {
	d, err := s.repo.FindDesignationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, organizationerrors.ErrDesignationNotFound
		}
		return DesignationResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch designation", 500)
	}
	return mapDesignation(*d), nil
}

func (s *service) DesignationOptions(ctx context.Context, departmentID string) ([]Option, error) {
	if _, err := uuid.Parse(departmentID); err != nil {
		return []Option{}, nil
	}

	designations, err := s.repo.FindDesignationsByDepartment(ctx, departmentID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to list designations", 500)
	}

	opts := make([]Option, len(designations))
	for i, d := range designations {
		opts[i] = Option{ID: d.ID.String(), Name: d.Title}
	}
	return opts, nil
}

func (s *service) UpdateDesignation(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	d, err := s.repo.FindDesignationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, organizationerrors.ErrDesignationNotFound
		}
		return DesignationResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch designation", 500)
	}

	minSalary, maxSalary, err := parseSalaryBand(req.MinSalary, req.MaxSalary)
	if err != nil {
		return DesignationResponse{}, err
	}

	d.Title = req.Title
	d.Code = req.Code
	d.Level = req.Level
	d.MinSalary = minSalary
	d.MaxSalary = maxSalary
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateDesignation(ctx, d); err != nil {
		return DesignationResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to update designation", 500)
	}

	return mapDesignation(*d), nil
}

func (s *service) DeleteDesignation(ctx context.Context, id string) error {
	if _, err := s.repo.FindDesignationByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return organizationerrors.ErrDesignationNotFound
		}
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch designation", 500)
	}

	if err := s.repo.DeleteDesignation(ctx, id); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to delete designation", 500)
	}
	return nil
}

func parseSalaryBand(minRaw, maxRaw string) (decimal.Decimal, decimal.Decimal, error) {
	minSalary := decimal.Zero
	maxSalary := decimal.Zero
	var err error

	if minRaw != "" {
		if minSalary, err = decimal.NewFromString(minRaw); err != nil {
			return decimal.Zero, decimal.Zero, apperror.InvalidField("min_salary")
		}
	}
	if maxRaw != "" {
		if maxSalary, err = decimal.NewFromString(maxRaw); err != nil {
			return decimal.Zero, decimal.Zero, apperror.InvalidField("max_salary")
		}
	}

	return minSalary, maxSalary, nil
}

func mapNode(level Level, n Node) NodeResponse {
	resp := NodeResponse{
		ID:       n.ID.String(),
		Level:    level.String(),
		Name:     n.Name,
		Code:     n.Code,
		IsActive: n.IsActive,
	}
	if n.ParentID != nil {
		resp.ParentID = n.ParentID.String()
	}
	return resp
}

func mapDesignation(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:           d.ID.String(),
		Title:        d.Title,
		Code:         d.Code,
		DepartmentID: d.DepartmentID.String(),
		Level:        d.Level,
		MinSalary:    d.MinSalary.StringFixed(2),
		MaxSalary:    d.MaxSalary.StringFixed(2),
		IsActive:     d.IsActive,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
