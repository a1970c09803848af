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

package symbol

import "fillmore-labs.com/syncguard/internal/tree"

// builtinType describes a platform type not declared in the tree.
type builtinType struct {
	supers  []TypeID
	iface   bool
	methods []builtinMethod
}

type builtinMethod struct {
	name     string
	params   []TypeID
	generic  []bool
	result   TypeID
	mods     tree.ModSet
	contract Contract
}

const (
	public          = tree.ModPublic
	publicFinal     = tree.ModPublic | tree.ModFinal
	publicStatic    = tree.ModPublic | tree.ModStatic
	publicAbstract  = tree.ModPublic | tree.ModAbstract
	protectedNative = tree.ModProtected | tree.ModNative
)

var (
	objectMethods = []builtinMethod{
		{name: "equals", params: []TypeID{Object}, result: "boolean", mods: public},
		{name: "hashCode", result: "int", mods: public | tree.ModNative},
		{name: "toString", result: String, mods: public},
		{name: "getClass", result: Class, mods: publicFinal | tree.ModNative, contract: ReturnsExisting},
		{name: "clone", result: Object, mods: protectedNative},
		{name: "finalize", result: Void, mods: tree.ModProtected},
		{name: "notify", result: Void, mods: publicFinal | tree.ModNative},
		{name: "notifyAll", result: Void, mods: publicFinal | tree.ModNative},
		{name: "wait", result: Void, mods: publicFinal},
		{name: "wait", params: []TypeID{"long"}, result: Void, mods: publicFinal},
		{name: "wait", params: []TypeID{"long", "int"}, result: Void, mods: publicFinal},
	}

	genericObject = []bool{true}
)

// builtins is a small model of the platform library, enough to answer hierarchy queries
// for common supertypes and to recognize a few methods with known result identity.
var builtins = map[TypeID]builtinType{
	Object:                   {methods: objectMethods},
	String:                   {supers: []TypeID{Object, Serializable, "java.lang.Comparable", "java.lang.CharSequence"}, methods: []builtinMethod{{name: "intern", result: String, mods: public | tree.ModNative, contract: ReturnsExisting}, {name: "toString", result: String, mods: public, contract: ReturnsExisting}}},
	Class:                    {supers: []TypeID{Object, Serializable}},
	Serializable:             {iface: true},
	Cloneable:                {iface: true},
	"java.io.Externalizable": {supers: []TypeID{Serializable}, iface: true},
	"java.lang.Comparable":   {iface: true, methods: []builtinMethod{{name: "compareTo", params: []TypeID{Object}, generic: genericObject, result: "int", mods: publicAbstract}}},
	"java.lang.CharSequence": {iface: true},
	"java.lang.Runnable":     {iface: true, methods: []builtinMethod{{name: "run", result: Void, mods: publicAbstract}}},
	"java.lang.AutoCloseable": {iface: true, methods: []builtinMethod{{name: "close", result: Void, mods: publicAbstract}}},
	"java.lang.Iterable":     {iface: true},
	Enum:                     {supers: []TypeID{Object, "java.lang.Comparable", Serializable}},
	Record:                   {supers: []TypeID{Object}},
	"java.lang.Number":       {supers: []TypeID{Object, Serializable}},
	"java.lang.Boolean":      {supers: []TypeID{Object, Serializable, "java.lang.Comparable"}, methods: []builtinMethod{{name: "valueOf", params: []TypeID{"boolean"}, result: "java.lang.Boolean", mods: publicStatic, contract: ReturnsExisting}}},
	"java.lang.Character":    {supers: []TypeID{Object, Serializable, "java.lang.Comparable"}},
	"java.lang.Byte":         {supers: []TypeID{"java.lang.Number", "java.lang.Comparable"}},
	"java.lang.Short":        {supers: []TypeID{"java.lang.Number", "java.lang.Comparable"}},
	"java.lang.Integer":      {supers: []TypeID{"java.lang.Number", "java.lang.Comparable"}},
	"java.lang.Long":         {supers: []TypeID{"java.lang.Number", "java.lang.Comparable"}},
	"java.lang.Float":        {supers: []TypeID{"java.lang.Number", "java.lang.Comparable"}},
	"java.lang.Double":       {supers: []TypeID{"java.lang.Number", "java.lang.Comparable"}},
	"java.lang.Throwable":    {supers: []TypeID{Object, Serializable}},
	"java.lang.Exception":    {supers: []TypeID{"java.lang.Throwable"}},
	"java.lang.Error":        {supers: []TypeID{"java.lang.Throwable"}},
	"java.lang.RuntimeException": {supers: []TypeID{"java.lang.Exception"}},
	"java.lang.Thread":       {supers: []TypeID{Object, "java.lang.Runnable"}, methods: []builtinMethod{{name: "currentThread", result: "java.lang.Thread", mods: publicStatic | tree.ModNative, contract: ReturnsExisting}}},
	"java.lang.StringBuilder": {supers: []TypeID{Object, Serializable, "java.lang.CharSequence"}, methods: []builtinMethod{{name: "append", params: []TypeID{Object}, result: "java.lang.StringBuilder", mods: public, contract: ReturnsExisting}}},

	"java.util.Collection":  {supers: []TypeID{"java.lang.Iterable"}, iface: true},
	"java.util.List":        {supers: []TypeID{"java.util.Collection"}, iface: true},
	"java.util.Set":         {supers: []TypeID{"java.util.Collection"}, iface: true},
	"java.util.Map":         {iface: true},
	"java.util.Comparator":  {iface: true, methods: []builtinMethod{{name: "compare", params: []TypeID{Object, Object}, generic: []bool{true, true}, result: "int", mods: publicAbstract}}},
	"java.util.ArrayList":   {supers: []TypeID{Object, "java.util.List", Serializable, Cloneable}},
	"java.util.LinkedList":  {supers: []TypeID{Object, "java.util.List", Serializable, Cloneable}},
	"java.util.HashMap":     {supers: []TypeID{Object, "java.util.Map", Serializable, Cloneable}},
	"java.util.HashSet":     {supers: []TypeID{Object, "java.util.Set", Serializable, Cloneable}},
	"java.util.Date":        {supers: []TypeID{Object, Serializable, Cloneable, "java.lang.Comparable"}},
	"java.util.Collections": {supers: []TypeID{Object}, methods: []builtinMethod{
		{name: "emptyList", result: "java.util.List", mods: publicStatic, contract: ReturnsExisting},
		{name: "emptySet", result: "java.util.Set", mods: publicStatic, contract: ReturnsExisting},
		{name: "emptyMap", result: "java.util.Map", mods: publicStatic, contract: ReturnsExisting},
	}},
	"java.util.EventObject": {supers: []TypeID{Object, Serializable}},

	"java.util.concurrent.Callable":            {iface: true, methods: []builtinMethod{{name: "call", result: Object, mods: publicAbstract}}},
	"java.util.concurrent.locks.Lock":          {iface: true},
	"java.util.concurrent.locks.ReentrantLock": {supers: []TypeID{Object, "java.util.concurrent.locks.Lock", Serializable}},
	"java.util.function.Supplier":              {iface: true, methods: []builtinMethod{{name: "get", result: Object, mods: publicAbstract}}},

	"java.awt.Component": {supers: []TypeID{Object, Serializable}},
}

// javaLang lists the implicitly imported simple names.
var javaLang = func() map[string]TypeID {
	m := make(map[string]TypeID)

	for id := range builtins {
		if pkg, name := splitPackage(id); pkg == "java.lang" {
			m[name] = id
		}
	}

	for _, name := range [...]string{"Math", "System", "Void", "Iterable", "Override", "Deprecated", "SuppressWarnings", "FunctionalInterface", "SafeVarargs"} {
		m[name] = TypeID("java.lang." + name)
	}

	return m
}()

func splitPackage(id TypeID) (pkg, name string) {
	s := string(id)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[:i], s[i+1:]
		}
	}

	return "", s
}

func builtinMethodOf(owner TypeID, m builtinMethod) Method {
	generic := m.generic
	if generic == nil {
		generic = make([]bool, len(m.params))
	}

	return Method{Owner: owner, Name: m.name, Params: m.params, Result: m.result, Mods: m.mods, Generic: generic}
}
