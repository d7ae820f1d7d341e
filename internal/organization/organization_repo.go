package organization

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateNode(ctx context.Context, level Level, node *Node) error
	FindAllNodes(ctx context.Context, level Level) ([]Node, error)
	FindNodeByID(ctx context.Context, level Level, id string) (*Node, error)
	UpdateNode(ctx context.Context, level Level, node *Node) error
	DeleteNode(ctx context.Context, level Level, id string) error
	FindActiveChildren(ctx context.Context, level Level, parentID string) ([]Node, error)
	CountEmployeeRefs(ctx context.Context, level Level, id string) (int64, error)
	CountChildNodes(ctx context.Context, level Level, parentID string) (int64, error)

	CreateDesignation(ctx context.Context, d *Designation) error
	FindAllDesignations(ctx context.Context) ([]Designation, error)
	FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error)
	FindDesignationByID(ctx context.Context, id string) (*Designation, error)
	UpdateDesignation(ctx context.Context, d *Designation) error
	DeleteDesignation(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) table(ctx context.Context, level Level) *gorm.DB {
	return r.db.WithContext(ctx).Model(&Node{}).Table(level.TableName())
}

func (r *repository) CreateNode(ctx context.Context, level Level, node *Node) error {
	return r.table(ctx, level).Create(node).Error
}

func (r *repository) FindAllNodes(ctx context.Context, level Level) ([]Node, error) {
	var nodes []Node
	err := r.table(ctx, level).Order("name ASC").Find(&nodes).Error
	return nodes, err
}

func (r *repository) FindNodeByID(ctx context.Context, level Level, id string) (*Node, error) {
	var node Node
	err := r.table(ctx, level).Where("id = ?", id).First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *repository) UpdateNode(ctx context.Context, level Level, node *Node) error {
	return r.table(ctx, level).Where("id = ?", node.ID).
		Select("name", "code", "is_active", "updated_at").
		Updates(node).Error
}

func (r *repository) DeleteNode(ctx context.Context, level Level, id string) error {
	return r.table(ctx, level).Where("id = ?", id).Delete(&Node{}).Error
}

func (r *repository) FindActiveChildren(ctx context.Context, level Level, parentID string) ([]Node, error) {
	var nodes []Node
	err := r.table(ctx, level).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("name ASC").
		Find(&nodes).Error
	return nodes, err
}

func (r *repository) CountEmployeeRefs(ctx context.Context, level Level, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where(level.EmployeeColumn()+" = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count, err
}

func (r *repository) CountChildNodes(ctx context.Context, level Level, parentID string) (int64, error) {
	child, ok := level.Child()
	if !ok {
		return 0, nil
	}
	var count int64
	err := r.table(ctx, child).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateDesignation(ctx context.Context, d *Designation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllDesignations(ctx context.Context) ([]Designation, error) {
	var out []Designation
	err := r.db.WithContext(ctx).Order("title ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error) {
	var out []Designation
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Order("title ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindDesignationByID(ctx context.Context, id string) (*Designation, error) {
	var d Designation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) UpdateDesignation(ctx context.Context, d *Designation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) DeleteDesignation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Designation{}).Error
}
