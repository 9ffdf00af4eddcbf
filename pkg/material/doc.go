// Package material is the component registry for question types. Each
// question type contributes one Descriptor binding its type identifier to a
// display widget, a property-editor widget, default props, and its
// interactivity classification. The registry is populated once at process
// start and consulted by the render dispatcher, the statistics table, and the
// design-time palette.
package material
