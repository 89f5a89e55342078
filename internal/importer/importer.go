package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/swinck/catalogo-backend/internal/tabular"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// Authorizer answers whether the caller is the administrator identity.
type Authorizer interface {
	IsAdmin(email string) (bool, error)
}

// Pipeline validates an uploaded tabular file and replaces one entity's
// dataset wholesale. Importing the same file twice yields the same stored
// dataset.
type Pipeline struct {
	store tabular.Store
	auth  Authorizer
}

func NewPipeline(store tabular.Store, auth Authorizer) *Pipeline {
	return &Pipeline{store: store, auth: auth}
}

// Import runs the pipeline for one upload. The admin check comes first and
// fails as an authorization error before any byte of the file is parsed.
func (p *Pipeline) Import(callerEmail string, entity tabular.Entity, filename string, data []byte) (int, error) {
	ok, err := p.auth.IsAdmin(callerEmail)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "acesso restrito ao administrador")
	}

	if !entity.Valid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("entidade desconhecida: %s", entity))
	}

	var rows []tabular.Row
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = tabular.ParseXLSX(bytes.NewReader(data))
	case ".csv":
		rows, err = tabular.ParseCSV(bytes.NewReader(data))
	default:
		return 0, pkgerrors.New(pkgerrors.CodeUnsupportedFormat, "formato não suportado, use .xlsx ou .csv")
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "falha ao importar")
	}

	if err := p.store.Write(entity, rows); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "falha ao gravar dados importados")
	}
	return len(rows), nil
}
