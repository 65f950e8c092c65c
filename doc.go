// Package verdict provides a small workflow rules engine that uses an
// instance of the Evaluator interface to perform evaluation of rule
// expressions.
//
// Verdict itself does not specify a language for rules, relying instead on
// the Evaluator's rule language. The dsl package provides the default
// language, including member access on bound records and method calls on
// bound capability objects. The cel and expr packages provide alternative
// backends built on google/cel-go and expr-lang/expr.
//
// Typical use is as follows:
//
//  1. Load or declare one or more workflows, each an ordered list of rules
//  2. Create an engine with the evaluator of your choice
//  3. Add the workflows to the engine; every rule expression is compiled
//  4. Build a FactContext with the values and capabilities rules refer to
//  5. Evaluate a workflow against the facts
//  6. Inspect the results, one per rule, in workflow order
//
// Workflows are immutable once added. The engine's workflow registry and
// compiled-program cache tolerate concurrent readers, so independent
// evaluation calls may run concurrently as long as each call owns its
// FactContext.
package verdict
