// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

package tree

//go:generate go tool stringer -type Kind,Role -linecomment

// Kind is the tag of a [Node] variant.
type Kind uint8

const (
	Invalid         Kind = iota // invalid
	CompilationUnit             // compilation unit
	PackageDecl                 // package
	ImportDecl                  // import

	ClassDecl      // class
	InterfaceDecl  // interface
	EnumDecl       // enum
	RecordDecl     // record
	AnnotationDecl // annotation type
	ClassBody      // class body
	EnumConstant   // enum constant

	FieldDecl          // field
	VariableDeclarator // variable
	MethodDecl         // method
	ConstructorDecl    // constructor
	Parameters         // parameters
	Parameter          // parameter
	Initializer        // initializer
	TypeParameter      // type parameter
	Modifiers          // modifiers
	Annotation         // annotation
	TypeRef            // type
	SuperTypes         // super types
	Throws             // throws

	Block        // block
	LocalVarDecl // local variable
	Synchronized // synchronized
	If           // if
	While        // while
	DoWhile      // do
	For          // for
	ForEach      // for each
	Switch       // switch
	Try          // try
	Catch        // catch
	Return       // return
	Throw        // throw
	Assert       // assert
	ExprStmt     // expression statement
	Statement    // statement

	Ident        // identifier
	FieldAccess  // field access
	Call         // call
	Arguments    // arguments
	New          // new
	Lambda       // lambda
	Assign       // assignment
	Literal      // literal
	This         // this
	Super        // super
	ClassLiteral // class literal
	Paren        // parenthesized
	Cast         // cast
	ArrayAccess  // array access
	Binary       // binary
	Unary        // unary
	Conditional  // conditional
	InstanceOf   // instanceof
	Expression   // expression

	Comment // comment
	Other   // other

	numKinds
)

// NumKinds is the number of distinct node kinds, suitable for sizing dispatch tables.
const NumKinds = int(numKinds)

// Role is the syntactic role of a child within its parent.
type Role uint8

const (
	NoRole      Role = iota // none
	RoleName                // name
	RoleType                // type
	RoleBody                // body
	RoleValue               // value
	RoleObject              // object
	RoleArgs                // arguments
	RoleParams              // parameters
	RoleLeft                // left
	RoleRight               // right
	RoleCond                // condition
	RoleThen                // consequence
	RoleElse                // alternative
	RoleSuper               // superclass
	RoleIfaces              // interfaces
	RoleInit                // init
	RoleUpdate              // update
	RoleLock                // lock
	RoleOperator            // operator
)

// Literal variants.
const (
	LitString uint8 = iota + 1
	LitChar
	LitInt
	LitLong
	LitFloat
	LitDouble
	LitBool
	LitNull
	LitTextBlock
)

// Comment variants.
const (
	LineComment uint8 = iota + 1
	BlockComment
	DocComment
)

// Parameter and initializer variants.
const (
	VarArgs      uint8 = 1 // a variable arity parameter
	StaticInit   uint8 = 1 // a static initializer block
	AnonymousNew uint8 = 1 // an instance creation with a class body
)

// IsType reports whether the kind declares a type.
func (k Kind) IsType() bool {
	switch k {
	case ClassDecl, InterfaceDecl, EnumDecl, RecordDecl, AnnotationDecl:
		return true
	default:
		return false
	}
}

// IsLoop reports whether the kind is a loop statement.
func (k Kind) IsLoop() bool {
	switch k {
	case While, DoWhile, For, ForEach:
		return true
	default:
		return false
	}
}

// IsMember reports whether the kind is a callable member or initializer.
func (k Kind) IsMember() bool {
	switch k {
	case MethodDecl, ConstructorDecl, Initializer:
		return true
	default:
		return false
	}
}
