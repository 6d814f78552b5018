// Package gen turns a schema into loadable data-model source code.
//
// The record and database emitters are written once here and are
// parameterized by a Backend, which supplies the type mapping table,
// resolve statements and the file templates of one target language.
//
// Generation steps:
//   - Check backend options (fatal configuration errors stop the backend)
//   - Order sheets so referenced sheets precede referencing ones
//   - Map every column through the backend (unsupported kinds are warned
//     about and skipped)
//   - Build resolve steps for Ref columns and for List columns whose
//     sub-records hold references
//   - Render the model with the backend's templates
//
// Generated code follows a two-phase protocol: Load fills scalar fields and
// raw reference keys, then, once every sheet is loaded, ResolveReferences
// binds each reference to the first record whose primary key matches.
package gen
