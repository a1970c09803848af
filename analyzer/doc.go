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

// Package analyzer implements the syncguard rule engine for Java-like sources.
//
// # Overview
//
// SyncGuard walks a syntax tree once, dispatching every node to the rules subscribed
// to its kind. Rules report findings, optionally with a quick fix that is computed
// and applied later against the then-current tree.
//
// # Example
//
// Before:
//
//	class Worker {
//	    private Object lock = new Object();
//
//	    void signal() {
//	        synchronized (lock) {
//	            lock.notify();
//	        }
//	    }
//	}
//
// After applying the suggested fixes:
//
//	class Worker {
//	    private final Object lock = new Object();
//
//	    void signal() {
//	        synchronized (lock) {
//	            lock.notifyAll();
//	        }
//	    }
//	}
//
// # Concurrency
//
// An [Analyzer] is safe for concurrent use once configured. Trees are independent;
// [Analyzer.RunAll] analyzes several of them in parallel.
package analyzer
