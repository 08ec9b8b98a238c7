package maintext

// wordcountMacro is the auxiliary counting resource fed to the typesetter in
// the final pass. It pins the interword and right-skip glue to recognizable
// widths and dumps every box to the log, so each interword space appears as
// exactly one glue line that CountGlueMarkers can match. Embedded content,
// not user-supplied.
const wordcountMacro = `% Interword glue audit. Drive with:
%   latex -jobname=wordcount "\def\wcfile{manuscript.tex}\input{wordcount.tex}"
% Every interword space in the typeset text shows up in the log as
%   \glue 3.08633
% and a space absorbed at a line end as
%   \glue(\rightskip) 2.84528
\AtBeginDocument{%
  \spaceskip=3.08633pt
  \xspaceskip=3.08633pt
  \rightskip=2.84528pt
  \hbadness=10000
  \hfuzz=\maxdimen
  \tracingonline=0
  \tracingoutput=1
  \showboxbreadth=\maxdimen
  \showboxdepth=\maxdimen
}
\input{\wcfile}
`
