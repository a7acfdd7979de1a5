package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webwright/pkg/types"
)

func newSet(files map[string]string) *types.FileSet {
	set := types.NewFileSet()
	for p, c := range files {
		set.Put(types.GeneratedFile{Path: p, Content: c})
	}
	return set
}

func TestExportImportValidatorMissingImportTarget(t *testing.T) {
	set := newSet(map[string]string{
		"context/TodoContext.ts": "import { createContext } from 'react';\n" +
			"export const TodoContext = createContext(null);\n",
		"components/List.ts": "import { useTodoContext } from '../context/TodoContext';\n" +
			"export function List() { return useTodoContext(); }\n",
	})

	issues := (&ExportImportValidator{}).Validate(set)
	require.Len(t, issues, 1)
	assert.Equal(t, types.IssueMissingImportTarget, issues[0].Kind)
	assert.Equal(t, "context/TodoContext.ts", issues[0].FilePath)
	assert.Equal(t, "useTodoContext", issues[0].Symbol)
	assert.Equal(t, "components/List.ts", issues[0].FromPath)
}

func TestExportImportValidatorMultiLineNamedImport(t *testing.T) {
	set := newSet(map[string]string{
		"context/TodoContext.ts": "export const TodoContext = createContext(null);\n",
		"components/List.ts": "import './List.css';\n" +
			"import {\n" +
			"  useTodoContext,\n" +
			"} from '../context/TodoContext';\n" +
			"export function List() { return useTodoContext(); }\n",
	})

	issues := (&ExportImportValidator{}).Validate(set)
	require.Len(t, issues, 1)
	assert.Equal(t, types.IssueMissingImportTarget, issues[0].Kind)
	assert.Equal(t, "useTodoContext", issues[0].Symbol)
	assert.Equal(t, "context/TodoContext.ts", issues[0].FilePath)
}

func TestExportImportValidatorResolvesExtensionsAndIndexFiles(t *testing.T) {
	set := newSet(map[string]string{
		"src/state/index.ts":   "export const store = {};\n",
		"src/components/A.tsx": "import { store } from '../state';\nexport const A = store;\n",
		"src/components/B.tsx": "import { missing } from '../state';\nexport const B = 1;\n",
	})

	issues := (&ExportImportValidator{}).Validate(set)
	require.Len(t, issues, 1)
	assert.Equal(t, "missing", issues[0].Symbol)
	assert.Equal(t, "src/state/index.ts", issues[0].FilePath)
}

func TestExportImportValidatorIgnoresExternalPackages(t *testing.T) {
	set := newSet(map[string]string{
		"src/App.tsx": "import React, { useState } from 'react';\nexport default function App() { return null; }\n",
	})
	assert.Empty(t, (&ExportImportValidator{}).Validate(set))
}

func TestExportImportValidatorDefaultImport(t *testing.T) {
	set := newSet(map[string]string{
		"src/App.tsx":  "export function App() {}\n", // named only, no default
		"src/main.tsx": "import App from './App';\n",
	})

	issues := (&ExportImportValidator{}).Validate(set)
	require.Len(t, issues, 1)
	assert.Equal(t, DefaultExportName, issues[0].Symbol)
	assert.Equal(t, "src/App.tsx", issues[0].FilePath)
}

func TestScanExports(t *testing.T) {
	content := `
export const a = 1;
export let b = 2;
export function doThing() {}
export async function doAsync() {}
export class Widget {}
export interface Props {}
export type Alias = string;
export default function App() {}
const hidden = 3;
export { hidden, a as renamed };
`
	exports := ScanExports(content)
	for _, sym := range []string{"a", "b", "doThing", "doAsync", "Widget", "Props", "Alias", "hidden", "renamed", DefaultExportName} {
		assert.True(t, exports[sym], "expected %q to be exported", sym)
	}
	assert.False(t, exports["hidden2"])
}

func TestScanImportsAliasUsesSourceSymbol(t *testing.T) {
	imports := scanImports("import { original as alias } from './mod';\n")
	require.Len(t, imports, 1)
	assert.Equal(t, []string{"original"}, imports[0].Symbols)
}

func TestContextPatternValidator(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantSymbols []string
	}{
		{
			name: "both exports present",
			content: "export const TodoContext = createContext(null);\n" +
				"export function useTodoContext() {}\n",
		},
		{
			name:        "accessor missing",
			content:     "export const TodoContext = createContext(null);\nfunction useTodoContext() {}\n",
			wantSymbols: []string{"useTodoContext"},
		},
		{
			name:        "both missing",
			content:     "const ctx = createContext(null);\n",
			wantSymbols: []string{"TodoContext", "useTodoContext"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newSet(map[string]string{"context/TodoContext.ts": tt.content})
			issues := (&ContextPatternValidator{}).Validate(set)
			require.Len(t, issues, len(tt.wantSymbols))
			for i, sym := range tt.wantSymbols {
				assert.Equal(t, types.IssueMissingExport, issues[i].Kind)
				assert.Equal(t, sym, issues[i].Symbol)
			}
		})
	}
}

func TestContextPatternValidatorIgnoresNonContextFiles(t *testing.T) {
	set := newSet(map[string]string{
		"src/App.tsx":       "export default function App() {}\n",
		"src/contextual.ts": "export const x = 1;\n",
	})
	assert.Empty(t, (&ContextPatternValidator{}).Validate(set))
}

func TestBoilerplateValidator(t *testing.T) {
	v := &BoilerplateValidator{Required: []string{"index.html", "src/main.tsx"}}

	set := newSet(map[string]string{"index.html": "<html></html>"})
	issues := v.Validate(set)
	require.Len(t, issues, 1)
	assert.Equal(t, types.IssueMissingBoilerplate, issues[0].Kind)
	assert.Equal(t, "src/main.tsx", issues[0].FilePath)

	set.Put(types.GeneratedFile{Path: "src/main.tsx", Content: "render();"})
	assert.Empty(t, v.Validate(set))
}

func TestContentValidator(t *testing.T) {
	set := newSet(map[string]string{
		"good.ts": "export const ok = true;\n",
		"bad.ts":  "binary\x00garbage",
	})
	issues := (&ContentValidator{}).Validate(set)
	require.Len(t, issues, 1)
	assert.Equal(t, types.IssueNonStringContent, issues[0].Kind)
	assert.Equal(t, "bad.ts", issues[0].FilePath)
}

func TestRunAllMergesInValidatorOrder(t *testing.T) {
	set := newSet(map[string]string{
		"bad.ts": "binary\x00garbage",
	})
	validators := DefaultValidators([]string{"index.html"})

	issues := RunAll(context.Background(), set, validators)
	require.Len(t, issues, 2)
	// ContentValidator runs first in the canonical order, boilerplate second.
	assert.Equal(t, types.IssueNonStringContent, issues[0].Kind)
	assert.Equal(t, types.IssueMissingBoilerplate, issues[1].Kind)
}

func TestRunAllRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	set := newSet(map[string]string{"bad.ts": "binary\x00garbage"})
	assert.Empty(t, RunAll(ctx, set, DefaultValidators(nil)))
}
