// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package syntax

// Kind identifies the concrete type of a [Node]. Rules register for kinds.
type Kind uint8

//go:generate go tool stringer -type Kind -trimprefix Kind

// Node kinds.
const (
	KindInvalid Kind = iota
	KindFile
	KindUsingDirective
	KindNamespaceDecl
	KindTypeDecl
	KindEnumDecl
	KindEnumMember
	KindDelegateDecl
	KindFieldDecl
	KindVarDeclarator
	KindPropertyDecl
	KindAccessor
	KindEventDecl
	KindMethodDecl
	KindConstructorInitializer
	KindParam
	KindAttributeList
	KindAttribute
	KindArgument
	KindBadDecl
	KindBlock
	KindLocalDeclStmt
	KindLocalFuncStmt
	KindExprStmt
	KindReturnStmt
	KindIfStmt
	KindWhileStmt
	KindDoStmt
	KindForStmt
	KindForeachStmt
	KindSwitchStmt
	KindSwitchSection
	KindTryStmt
	KindCatchClause
	KindThrowStmt
	KindBranchStmt
	KindUsingStmt
	KindLockStmt
	KindYieldStmt
	KindEmptyStmt
	KindBadStmt
	KindIdent
	KindGenericName
	KindMemberAccess
	KindPredefinedType
	KindArrayType
	KindNullableType
	KindBasicLit
	KindThisExpr
	KindBaseExpr
	KindParenExpr
	KindInvocationExpr
	KindElementAccess
	KindObjectCreation
	KindArrayCreation
	KindInitializerExpr
	KindTypeofExpr
	KindDefaultExpr
	KindCastExpr
	KindAsExpr
	KindIsExpr
	KindUnaryExpr
	KindPostfixExpr
	KindAwaitExpr
	KindBinaryExpr
	KindConditionalExpr
	KindAssignExpr
	KindLambdaExpr
	KindThrowExpr
	KindBadExpr
)
